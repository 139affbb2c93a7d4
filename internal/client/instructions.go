// Package client builds and submits store instructions from off-chain
// callers. Account lists here are the wire contract: order, writability and
// signer flags must match what the processor's role tables expect.
package client

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/splstore/splstore/internal/store"
)

// InstructionBuilder produces store instructions for one (program, mint)
// pair.
type InstructionBuilder struct {
	programID solana.PublicKey
	mint      solana.PublicKey
}

func NewInstructionBuilder(programID, mint solana.PublicKey) *InstructionBuilder {
	return &InstructionBuilder{programID: programID, mint: mint}
}

// Initialize builds the instruction that creates (or re-prices) the store
// account and provisions its token account. extraLamports is added on top
// of the rent minimum and must cover the token account's rent when the
// store funds its own ATA creation.
func (b *InstructionBuilder) Initialize(funding, storeKey, admin solana.PublicKey, price float64, extraLamports uint64) (solana.Instruction, error) {
	data, err := store.EncodeInstruction(&store.Initialize{Price: price, ExtraLamports: extraLamports})
	if err != nil {
		return nil, fmt.Errorf("encode initialize: %w", err)
	}
	storeATA, _, err := solana.FindAssociatedTokenAddress(storeKey, b.mint)
	if err != nil {
		return nil, fmt.Errorf("derive store token account: %w", err)
	}

	metas := []*solana.AccountMeta{
		{PublicKey: funding, IsWritable: true, IsSigner: true},
		{PublicKey: storeATA, IsWritable: true},
		{PublicKey: storeKey, IsWritable: true, IsSigner: true},
		{PublicKey: b.mint},
		{PublicKey: solana.SystemProgramID},
		{PublicKey: solana.TokenProgramID},
		{PublicKey: admin, IsSigner: true},
		{PublicKey: solana.SPLAssociatedTokenAccountProgramID},
	}
	return solana.NewInstruction(b.programID, metas, data), nil
}

// Buy builds the instruction that has the store buy amount tokens from the
// client. The client signs for the outgoing token transfer; funding pays if
// the store's token account must be created.
func (b *InstructionBuilder) Buy(funding, storeKey, client solana.PublicKey, amount float64) (solana.Instruction, error) {
	data, err := store.EncodeInstruction(&store.Buy{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("encode buy: %w", err)
	}
	storeATA, clientATA, err := b.deriveATAs(storeKey, client)
	if err != nil {
		return nil, err
	}

	metas := []*solana.AccountMeta{
		{PublicKey: funding, IsWritable: true, IsSigner: true},
		{PublicKey: storeKey, IsWritable: true},
		{PublicKey: storeATA, IsWritable: true},
		{PublicKey: client, IsWritable: true, IsSigner: true},
		{PublicKey: clientATA, IsWritable: true},
		{PublicKey: b.mint},
		{PublicKey: solana.TokenProgramID},
		{PublicKey: solana.SystemProgramID},
		{PublicKey: solana.SPLAssociatedTokenAccountProgramID},
	}
	return solana.NewInstruction(b.programID, metas, data), nil
}

// Sell builds the instruction that has the store sell amount tokens to the
// client. clientSigns must be set when the client's token account does not
// exist yet; provisioning it requires the client's authorization.
func (b *InstructionBuilder) Sell(funding, storeKey, client solana.PublicKey, amount float64, clientSigns bool) (solana.Instruction, error) {
	data, err := store.EncodeInstruction(&store.Sell{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("encode sell: %w", err)
	}
	storeATA, clientATA, err := b.deriveATAs(storeKey, client)
	if err != nil {
		return nil, err
	}

	metas := []*solana.AccountMeta{
		{PublicKey: funding, IsWritable: true, IsSigner: true},
		{PublicKey: storeKey, IsWritable: true, IsSigner: true},
		{PublicKey: storeATA, IsWritable: true},
		{PublicKey: client, IsWritable: true, IsSigner: clientSigns},
		{PublicKey: clientATA, IsWritable: true},
		{PublicKey: b.mint},
		{PublicKey: solana.TokenProgramID},
		{PublicKey: solana.SystemProgramID},
		{PublicKey: solana.SPLAssociatedTokenAccountProgramID},
	}
	return solana.NewInstruction(b.programID, metas, data), nil
}

// UpdatePrice builds the admin-gated price change instruction.
func (b *InstructionBuilder) UpdatePrice(storeKey, admin solana.PublicKey, newPrice float64) (solana.Instruction, error) {
	data, err := store.EncodeInstruction(&store.UpdatePrice{NewPrice: newPrice})
	if err != nil {
		return nil, fmt.Errorf("encode update price: %w", err)
	}
	metas := []*solana.AccountMeta{
		{PublicKey: storeKey, IsWritable: true},
		{PublicKey: admin, IsSigner: true},
	}
	return solana.NewInstruction(b.programID, metas, data), nil
}

func (b *InstructionBuilder) deriveATAs(storeKey, client solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	storeATA, _, err := solana.FindAssociatedTokenAddress(storeKey, b.mint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("derive store token account: %w", err)
	}
	clientATA, _, err := solana.FindAssociatedTokenAddress(client, b.mint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("derive client token account: %w", err)
	}
	return storeATA, clientATA, nil
}
