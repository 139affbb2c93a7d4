// Package runtime defines the account model and host collaborator
// interfaces the store processor runs against. The production host is the
// chain runtime; tests and the local simulator use internal/sandbox.
package runtime

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrLamportOverflow  = errors.New("lamport balance overflow")
	ErrLamportUnderflow = errors.New("lamport balance underflow")
)

// Account is a mutable handle to a single on-chain account as loaded by the
// host for one instruction. Signer and Writable reflect the transaction's
// account metas; the host has already verified the signatures.
type Account struct {
	Key      solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
	Signer   bool
	Writable bool
}

// Initialized reports whether the account carries any state. Fresh handles
// for not-yet-created accounts have no data and a zero balance.
func (a *Account) Initialized() bool {
	return len(a.Data) > 0
}

// CreditLamports adds n to the balance, failing on overflow.
func (a *Account) CreditLamports(n uint64) error {
	if a.Lamports+n < a.Lamports {
		return ErrLamportOverflow
	}
	a.Lamports += n
	return nil
}

// DebitLamports removes n from the balance, failing if it would go negative.
func (a *Account) DebitLamports(n uint64) error {
	if a.Lamports < n {
		return ErrLamportUnderflow
	}
	a.Lamports -= n
	return nil
}

// Clone returns a deep copy of the account. The sandbox executes
// instructions against clones so a failed instruction leaves the committed
// state untouched.
func (a *Account) Clone() *Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Account{
		Key:      a.Key,
		Owner:    a.Owner,
		Lamports: a.Lamports,
		Data:     data,
		Signer:   a.Signer,
		Writable: a.Writable,
	}
}
