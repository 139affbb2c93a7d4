package sandbox

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/splstore/splstore/internal/runtime"
)

// The Ledger implements runtime.Host. Handles passed in here are the clones
// managed by Execute; nothing below touches committed state directly.
var _ runtime.Host = (*Ledger)(nil)

// rentPerByte mirrors the chain's two-year rent-exemption rate; the 128
// bytes cover the account's fixed overhead.
const (
	rentPerByte            = 6960
	accountStorageOverhead = 128
)

// MinimumBalance returns the rent-exempt minimum for an account of the
// given size.
func (l *Ledger) MinimumBalance(space uint64) uint64 {
	return (space + accountStorageOverhead) * rentPerByte
}

// CreateAccount allocates target with space zeroed bytes under owner,
// moving lamports from funding. Both handles must be writable signers.
func (l *Ledger) CreateAccount(funding, target *runtime.Account, lamports, space uint64, owner solana.PublicKey) error {
	if !funding.Signer || !target.Signer {
		return ErrMissingSignature
	}
	if !funding.Writable || !target.Writable {
		return ErrNotWritable
	}
	if target.Initialized() || target.Lamports > 0 {
		return ErrAccountExists
	}
	if err := funding.DebitLamports(lamports); err != nil {
		return fmt.Errorf("fund new account: %w", err)
	}
	if err := target.CreditLamports(lamports); err != nil {
		return err
	}
	target.Data = make([]byte, space)
	target.Owner = owner
	return nil
}

// Transfer moves amount base units between token accounts. owner must have
// signed and be the recorded owner of the source account; both token
// accounts must share a mint.
func (l *Ledger) Transfer(source, dest, owner *runtime.Account, amount uint64) error {
	if !owner.Signer {
		return ErrMissingSignature
	}
	if !source.Writable || !dest.Writable {
		return ErrNotWritable
	}
	recordedOwner, err := runtime.TokenAccountOwner(source.Data)
	if err != nil {
		return err
	}
	if !recordedOwner.Equals(owner.Key) {
		return ErrWrongOwner
	}
	sourceMint, err := runtime.TokenAccountMint(source.Data)
	if err != nil {
		return err
	}
	destMint, err := runtime.TokenAccountMint(dest.Data)
	if err != nil {
		return err
	}
	if !sourceMint.Equals(destMint) {
		return ErrMintMismatch
	}

	sourceBalance, err := runtime.TokenAccountBalance(source.Data)
	if err != nil {
		return err
	}
	if sourceBalance < amount {
		return ErrTokenBalance
	}
	destBalance, err := runtime.TokenAccountBalance(dest.Data)
	if err != nil {
		return err
	}
	if err := runtime.SetTokenAccountBalance(source.Data, sourceBalance-amount); err != nil {
		return err
	}
	return runtime.SetTokenAccountBalance(dest.Data, destBalance+amount)
}

// DeriveAddress returns the canonical associated token account address.
func (l *Ledger) DeriveAddress(wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	return ata, err
}

// EnsureAccount provisions ata as the associated token account for
// (wallet, mint). Already-initialized accounts are left untouched, so
// re-provisioning never fails.
func (l *Ledger) EnsureAccount(funding, ata, wallet, mint *runtime.Account) error {
	if runtime.TokenAccountInitialized(ata.Data) {
		return nil
	}
	if !funding.Signer {
		return ErrMissingSignature
	}
	if !ata.Writable {
		return ErrNotWritable
	}
	derived, err := l.DeriveAddress(wallet.Key, mint.Key)
	if err != nil {
		return err
	}
	if !derived.Equals(ata.Key) {
		return ErrWrongDerivation
	}

	rent := l.MinimumBalance(runtime.TokenAccountSize)
	if err := funding.DebitLamports(rent); err != nil {
		return fmt.Errorf("fund associated token account: %w", err)
	}
	if err := ata.CreditLamports(rent); err != nil {
		return err
	}
	ata.Data = runtime.PackTokenAccount(mint.Key, wallet.Key, 0)
	ata.Owner = solana.TokenProgramID
	return nil
}
