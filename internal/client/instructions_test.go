package client

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splstore/splstore/internal/store"
)

type fixture struct {
	programID solana.PublicKey
	mint      solana.PublicKey
	storeKey  solana.PublicKey
	client    solana.PublicKey
	storeATA  solana.PublicKey
	clientATA solana.PublicKey
	builder   *InstructionBuilder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		programID: solana.NewWallet().PublicKey(),
		mint:      solana.NewWallet().PublicKey(),
		storeKey:  solana.NewWallet().PublicKey(),
		client:    solana.NewWallet().PublicKey(),
	}
	var err error
	f.storeATA, _, err = solana.FindAssociatedTokenAddress(f.storeKey, f.mint)
	require.NoError(t, err)
	f.clientATA, _, err = solana.FindAssociatedTokenAddress(f.client, f.mint)
	require.NoError(t, err)
	f.builder = NewInstructionBuilder(f.programID, f.mint)
	return f
}

func requireMeta(t *testing.T, meta *solana.AccountMeta, key solana.PublicKey, writable, signer bool) {
	t.Helper()
	assert.Equal(t, key, meta.PublicKey)
	assert.Equal(t, writable, meta.IsWritable, "writable flag for %s", key)
	assert.Equal(t, signer, meta.IsSigner, "signer flag for %s", key)
}

func TestBuildInitialize(t *testing.T) {
	f := newFixture(t)
	admin := solana.NewWallet().PublicKey()
	funding := solana.NewWallet().PublicKey()

	instr, err := f.builder.Initialize(funding, f.storeKey, admin, 42, 500)
	require.NoError(t, err)
	assert.Equal(t, f.programID, instr.ProgramID())

	metas := instr.Accounts()
	require.Len(t, metas, 8)
	requireMeta(t, metas[0], funding, true, true)
	requireMeta(t, metas[1], f.storeATA, true, false)
	requireMeta(t, metas[2], f.storeKey, true, true)
	requireMeta(t, metas[3], f.mint, false, false)
	requireMeta(t, metas[4], solana.SystemProgramID, false, false)
	requireMeta(t, metas[5], solana.TokenProgramID, false, false)
	requireMeta(t, metas[6], admin, false, true)
	requireMeta(t, metas[7], solana.SPLAssociatedTokenAccountProgramID, false, false)

	data, err := instr.Data()
	require.NoError(t, err)
	decoded, err := store.DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, &store.Initialize{Price: 42, ExtraLamports: 500}, decoded)
}

func TestBuildBuy(t *testing.T) {
	f := newFixture(t)
	funding := solana.NewWallet().PublicKey()

	instr, err := f.builder.Buy(funding, f.storeKey, f.client, 14)
	require.NoError(t, err)

	metas := instr.Accounts()
	require.Len(t, metas, 9)
	requireMeta(t, metas[0], funding, true, true)
	requireMeta(t, metas[1], f.storeKey, true, false)
	requireMeta(t, metas[2], f.storeATA, true, false)
	requireMeta(t, metas[3], f.client, true, true)
	requireMeta(t, metas[4], f.clientATA, true, false)
	requireMeta(t, metas[5], f.mint, false, false)
	requireMeta(t, metas[6], solana.TokenProgramID, false, false)

	data, err := instr.Data()
	require.NoError(t, err)
	decoded, err := store.DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, &store.Buy{Amount: 14}, decoded)
}

func TestBuildSell(t *testing.T) {
	f := newFixture(t)
	funding := solana.NewWallet().PublicKey()

	instr, err := f.builder.Sell(funding, f.storeKey, f.client, 7, false)
	require.NoError(t, err)

	metas := instr.Accounts()
	require.Len(t, metas, 9)
	requireMeta(t, metas[0], funding, true, true)
	requireMeta(t, metas[1], f.storeKey, true, true)
	requireMeta(t, metas[2], f.storeATA, true, false)
	requireMeta(t, metas[3], f.client, true, false)
	requireMeta(t, metas[4], f.clientATA, true, false)

	// The client signs only when its token account must be provisioned.
	instr, err = f.builder.Sell(funding, f.storeKey, f.client, 7, true)
	require.NoError(t, err)
	requireMeta(t, instr.Accounts()[3], f.client, true, true)
}

func TestBuildUpdatePrice(t *testing.T) {
	f := newFixture(t)
	admin := solana.NewWallet().PublicKey()

	instr, err := f.builder.UpdatePrice(f.storeKey, admin, 37)
	require.NoError(t, err)

	metas := instr.Accounts()
	require.Len(t, metas, 2)
	requireMeta(t, metas[0], f.storeKey, true, false)
	requireMeta(t, metas[1], admin, false, true)

	data, err := instr.Data()
	require.NoError(t, err)
	decoded, err := store.DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, &store.UpdatePrice{NewPrice: 37}, decoded)
}
