// Package sandbox is an in-memory implementation of the host environment
// the store processor runs inside: an account ledger with all-or-nothing
// instruction application, plus the system, token and associated-token
// collaborators. Tests and the local simulator run against it.
package sandbox

import (
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/runtime"
)

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrMissingSignature = errors.New("missing required signature")
	ErrNotWritable      = errors.New("account is not writable")
	ErrWrongOwner       = errors.New("wrong account owner")
	ErrWrongDerivation  = errors.New("account is not the canonical derived address")
	ErrTokenBalance     = errors.New("insufficient token balance")
	ErrMintMismatch     = errors.New("source and destination mints differ")
)

// Processor is the slice of the store processor the sandbox needs to run an
// instruction.
type Processor interface {
	Process(accounts []*runtime.Account, data []byte) error
}

// Ledger holds the committed account state. Instructions execute against
// clones and commit only on success, which gives the processor the same
// atomicity guarantee the chain host provides.
type Ledger struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*runtime.Account
	logger   *zap.Logger
}

func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		accounts: make(map[solana.PublicKey]*runtime.Account),
		logger:   logger,
	}
}

// Execute resolves the account metas into cloned handles, runs the
// instruction and commits the clones on success. On any error the clones
// are discarded and the committed state is untouched.
func (l *Ledger) Execute(p Processor, metas []*solana.AccountMeta, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	handles := make([]*runtime.Account, len(metas))
	touched := make(map[solana.PublicKey]*runtime.Account, len(metas))
	for i, meta := range metas {
		if acc, ok := touched[meta.PublicKey]; ok {
			// Duplicate metas alias the same handle; flags accumulate.
			acc.Signer = acc.Signer || meta.IsSigner
			acc.Writable = acc.Writable || meta.IsWritable
			handles[i] = acc
			continue
		}
		acc := l.loadHandle(meta.PublicKey)
		acc.Signer = meta.IsSigner
		acc.Writable = meta.IsWritable
		touched[meta.PublicKey] = acc
		handles[i] = acc
	}

	if err := p.Process(handles, data); err != nil {
		l.logger.Debug("instruction aborted, mutations discarded", zap.Error(err))
		return err
	}

	for key, acc := range touched {
		acc.Signer = false
		acc.Writable = false
		if acc.Lamports == 0 && !acc.Initialized() {
			continue
		}
		l.accounts[key] = acc
	}
	return nil
}

func (l *Ledger) loadHandle(key solana.PublicKey) *runtime.Account {
	if committed, ok := l.accounts[key]; ok {
		return committed.Clone()
	}
	return &runtime.Account{Key: key, Owner: solana.SystemProgramID}
}

// FundWallet credits a system-owned account, creating it if needed.
func (l *Ledger) FundWallet(key solana.PublicKey, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[key]
	if !ok {
		acc = &runtime.Account{Key: key, Owner: solana.SystemProgramID}
		l.accounts[key] = acc
	}
	acc.Lamports += lamports
}

// CreateMint registers a new mint with the given decimal scale and returns
// its address.
func (l *Ledger) CreateMint(decimals uint8) solana.PublicKey {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := solana.NewWallet().PublicKey()
	l.accounts[key] = &runtime.Account{
		Key:      key,
		Owner:    solana.TokenProgramID,
		Lamports: l.MinimumBalance(runtime.MintSize),
		Data:     runtime.PackMint(decimals, 0),
	}
	return key
}

// MintTo credits base units to the wallet's associated token account,
// creating the account if needed, and bumps the mint supply.
func (l *Ledger) MintTo(mint, wallet solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	mintAcc, ok := l.accounts[mint]
	if !ok {
		return ErrWrongOwner
	}
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return err
	}
	acc, ok := l.accounts[ata]
	if !ok {
		acc = &runtime.Account{
			Key:      ata,
			Owner:    solana.TokenProgramID,
			Lamports: l.MinimumBalance(runtime.TokenAccountSize),
			Data:     runtime.PackTokenAccount(mint, wallet, 0),
		}
		l.accounts[ata] = acc
	}
	balance, err := runtime.TokenAccountBalance(acc.Data)
	if err != nil {
		return err
	}
	if err := runtime.SetTokenAccountBalance(acc.Data, balance+amount); err != nil {
		return err
	}
	supply, err := runtime.MintSupply(mintAcc.Data)
	if err != nil {
		return err
	}
	return runtime.SetMintSupply(mintAcc.Data, supply+amount)
}

// Balance returns the committed lamport balance of an account.
func (l *Ledger) Balance(key solana.PublicKey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[key]; ok {
		return acc.Lamports
	}
	return 0
}

// TokenBalance returns the committed base-unit balance of the wallet's
// associated token account, zero when the account does not exist.
func (l *Ledger) TokenBalance(wallet, mint solana.PublicKey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return 0
	}
	acc, ok := l.accounts[ata]
	if !ok {
		return 0
	}
	balance, err := runtime.TokenAccountBalance(acc.Data)
	if err != nil {
		return 0
	}
	return balance
}

// Account returns a copy of the committed account, or nil if absent.
func (l *Ledger) Account(key solana.PublicKey) *runtime.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[key]; ok {
		return acc.Clone()
	}
	return nil
}
