package store

import (
	"fmt"

	"github.com/splstore/splstore/internal/runtime"
)

// requireAdmin is the capability check for privileged operations: the
// presented account must have signed the transaction and its key must match
// the admin identity recorded in the store state.
func requireAdmin(state *State, presented *runtime.Account) error {
	if !presented.Signer {
		return fmt.Errorf("admin account: %w", ErrAccountNotSigner)
	}
	if !presented.Key.Equals(state.Admin) {
		return ErrAccountNotAdmin
	}
	return nil
}
