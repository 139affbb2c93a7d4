package runtime

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAccountLayout(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	data := PackTokenAccount(mint, owner, 1_500)
	require.Len(t, data, TokenAccountSize)

	gotMint, err := TokenAccountMint(data)
	require.NoError(t, err)
	assert.Equal(t, mint, gotMint)

	gotOwner, err := TokenAccountOwner(data)
	require.NoError(t, err)
	assert.Equal(t, owner, gotOwner)

	balance, err := TokenAccountBalance(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500), balance)

	require.NoError(t, SetTokenAccountBalance(data, 7))
	balance, err = TokenAccountBalance(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), balance)

	assert.True(t, TokenAccountInitialized(data))
	assert.False(t, TokenAccountInitialized(nil))
	assert.False(t, TokenAccountInitialized(make([]byte, TokenAccountSize)))
}

func TestTokenAccountRejectsWrongSize(t *testing.T) {
	short := make([]byte, TokenAccountSize-1)
	_, err := TokenAccountMint(short)
	assert.ErrorIs(t, err, ErrNotTokenAccount)
	_, err = TokenAccountBalance(short)
	assert.ErrorIs(t, err, ErrNotTokenAccount)
	assert.ErrorIs(t, SetTokenAccountBalance(short, 1), ErrNotTokenAccount)
}

func TestMintLayout(t *testing.T) {
	data := PackMint(9, 42)
	require.Len(t, data, MintSize)

	decimals, err := MintDecimals(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), decimals)

	supply, err := MintSupply(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), supply)

	require.NoError(t, SetMintSupply(data, 100))
	supply, err = MintSupply(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), supply)

	_, err = MintDecimals(nil)
	assert.ErrorIs(t, err, ErrNotMintAccount)
}
