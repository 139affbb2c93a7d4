package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/runtime"
)

// Initialize account list, positional:
//   - [writable, signer] funding account
//   - [writable]         store associated token account
//   - [writable]         store account (signer when it must be created)
//   - []                 token mint
//   - []                 system program
//   - []                 token program
//   - []                 admin identity
//   - []                 associated token program
var initializeRoles = []role{
	{name: "funding", writable: true, signer: true},
	{name: "store token", writable: true},
	{name: "store", writable: true},
	{name: "mint"},
	{name: "system program"},
	{name: "token program"},
	{name: "admin"},
	{name: "associated token program"},
}

func (p *Processor) initialize(accounts []*runtime.Account, in *Initialize) error {
	accs, err := pullAccounts(accounts, initializeRoles)
	if err != nil {
		return err
	}
	funding, storeATA, storeAcc, mint, admin := accs[0], accs[1], accs[2], accs[3], accs[6]

	if !(in.Price > 0) {
		return ErrInvalidPrice
	}

	minBalance := p.host.MinimumBalance(StateSize)
	if !storeAcc.Initialized() {
		// Creating the backing account requires the new address to
		// authorize creation under its own key.
		if !storeAcc.Signer {
			return fmt.Errorf("store account: %w", ErrAccountNotSigner)
		}
		lamports := minBalance + in.ExtraLamports
		if err := p.host.CreateAccount(funding, storeAcc, lamports, StateSize, p.programID); err != nil {
			return fmt.Errorf("create store account: %w", err)
		}
	} else {
		if !storeAcc.Owner.Equals(p.programID) {
			return ErrIncorrectProgramID
		}
		if storeAcc.Lamports < minBalance {
			return ErrNotRentExempt
		}
	}

	state, err := LoadState(storeAcc)
	if err != nil {
		return err
	}
	if state.Initialized() {
		// Re-running updates the price in place; only the current admin
		// may do that.
		if err := requireAdmin(state, admin); err != nil {
			return err
		}
	} else {
		state.Admin = admin.Key
	}
	state.Price = in.Price
	if err := StoreState(storeAcc, state); err != nil {
		return err
	}

	if err := checkDerivedAddress(p.host, storeATA, storeAcc.Key, mint.Key); err != nil {
		return err
	}
	// The store funds its own token account; EnsureAccount is a no-op when
	// it already exists.
	if err := p.host.EnsureAccount(storeAcc, storeATA, storeAcc, mint); err != nil {
		return fmt.Errorf("ensure store token account: %w", err)
	}

	p.logger.Info("store initialized",
		zap.String("store", storeAcc.Key.String()),
		zap.String("admin", state.Admin.String()),
		zap.Float64("price", state.Price))
	return nil
}
