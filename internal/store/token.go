package store

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/splstore/splstore/internal/runtime"
)

// checkTokenAccountMint rejects token accounts recorded against a different
// mint than the one supplied with the instruction. This is what keeps a
// caller from smuggling in a wrong-token account.
func checkTokenAccountMint(ata *runtime.Account, mint solana.PublicKey) error {
	recorded, err := runtime.TokenAccountMint(ata.Data)
	if err != nil {
		return ErrNoAccountMint
	}
	if !recorded.Equals(mint) {
		return ErrWrongAccountMint
	}
	return nil
}

// tokenBalance reads the unpacked base-unit balance of a token account.
// Funding checks use this, never the account's lamport balance.
func tokenBalance(ata *runtime.Account) (uint64, error) {
	balance, err := runtime.TokenAccountBalance(ata.Data)
	if err != nil {
		return 0, fmt.Errorf("unpack token balance: %w", err)
	}
	return balance, nil
}

// checkDerivedAddress re-derives the canonical associated token account
// address for (wallet, mint) and compares it to the supplied account.
func checkDerivedAddress(host runtime.AssociatedTokenService, ata *runtime.Account, wallet, mint solana.PublicKey) error {
	derived, err := host.DeriveAddress(wallet, mint)
	if err != nil {
		return fmt.Errorf("derive associated token address: %w", err)
	}
	if !derived.Equals(ata.Key) {
		return ErrInvalidAtaAddress
	}
	return nil
}
