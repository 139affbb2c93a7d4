package store

import (
	"fmt"

	"github.com/splstore/splstore/internal/runtime"
)

// role describes one expected entry of a handler's positional account list.
// Each handler declares its full list as a table; validation walks the table
// in order so a misplaced account fails with the role's name attached
// instead of corrupting a later check.
type role struct {
	name     string
	writable bool
	signer   bool
}

// pullAccounts validates the supplied account list against the expected
// roles and returns the typed prefix. Extra trailing accounts are allowed;
// handlers that take conditional service accounts pick them up separately.
func pullAccounts(accounts []*runtime.Account, roles []role) ([]*runtime.Account, error) {
	if len(accounts) < len(roles) {
		return nil, fmt.Errorf("%w: want %d accounts, got %d", ErrMissingAccount, len(roles), len(accounts))
	}
	for i, r := range roles {
		if r.writable && !accounts[i].Writable {
			return nil, fmt.Errorf("%s account: %w", r.name, ErrAccountNotWritable)
		}
		if r.signer && !accounts[i].Signer {
			return nil, fmt.Errorf("%s account: %w", r.name, ErrAccountNotSigner)
		}
	}
	return accounts[:len(roles)], nil
}
