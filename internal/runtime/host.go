package runtime

import "github.com/gagliardetto/solana-go"

// SystemService is the host's account-creation primitive.
type SystemService interface {
	// MinimumBalance returns the smallest rent-exempt balance for an
	// account holding space bytes.
	MinimumBalance(space uint64) uint64

	// CreateAccount funds and allocates target from funding. Both handles
	// must be writable signers; the host enforces that target does not
	// already exist.
	CreateAccount(funding, target *Account, lamports, space uint64, owner solana.PublicKey) error
}

// TokenService is the host's token-transfer primitive. It owns the token
// account layout; callers hand it raw account handles.
type TokenService interface {
	// Transfer moves amount base units from source to dest. owner must be
	// a signer and the recorded owner or delegate of source.
	Transfer(source, dest, owner *Account, amount uint64) error
}

// AssociatedTokenService derives and provisions canonical token-holding
// accounts for (wallet, mint) pairs.
type AssociatedTokenService interface {
	// DeriveAddress returns the canonical associated token account address
	// for the wallet and mint.
	DeriveAddress(wallet, mint solana.PublicKey) (solana.PublicKey, error)

	// EnsureAccount initializes ata as the associated token account for
	// (wallet, mint), funded by funding. It is idempotent: an already
	// initialized ata is left as is and no error is returned.
	EnsureAccount(funding, ata, wallet, mint *Account) error
}

// Host bundles every collaborator the store processor calls into.
type Host interface {
	SystemService
	TokenService
	AssociatedTokenService
}
