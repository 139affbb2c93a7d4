package store

import "errors"

// Every validation failure maps to one of these sentinels so callers can
// classify the abort; host failures propagate unchanged.
var (
	ErrMalformedInstruction = errors.New("malformed instruction")
	ErrMissingAccount       = errors.New("missing account")
	ErrAccountNotWritable   = errors.New("account is not writable")
	ErrAccountNotSigner     = errors.New("account is not signer")
	ErrAccountNotAdmin      = errors.New("account is not the store admin")
	ErrIncorrectProgramID   = errors.New("account is not owned by the store program")
	ErrUninitializedAccount = errors.New("store account is not initialized")
	ErrNotRentExempt        = errors.New("store account is not rent exempt")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidAmount        = errors.New("invalid trade amount")
	ErrAmountOverflow       = errors.New("amount does not fit in base units")
	ErrInsufficientFunds    = errors.New("insufficient funds for transaction")
	ErrNoAccountMint        = errors.New("failed to unpack token account mint")
	ErrWrongAccountMint     = errors.New("wrong token account mint")
	ErrInvalidAtaAddress    = errors.New("invalid associated token account address")
)
