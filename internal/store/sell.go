package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/runtime"
)

// Sell account list, positional — the mirror of Buy with the signer roles
// swapped: the store signs because it authorizes the outgoing token
// transfer; the client only has to sign when its ATA must be created.
//   - [writable, signer] funding account
//   - [writable, signer] store account (lamport recipient, token owner)
//   - [writable]         store associated token account (token source)
//   - [writable]         client account (lamport source)
//   - [writable]         client associated token account (token recipient)
//   - []                 token mint
//   - []                 token program
var sellRoles = []role{
	{name: "funding", writable: true, signer: true},
	{name: "store", writable: true, signer: true},
	{name: "store token", writable: true},
	{name: "client", writable: true},
	{name: "client token", writable: true},
	{name: "mint"},
	{name: "token program"},
}

// sell moves tokens store -> client and lamports client -> store at the
// stored unit price.
func (p *Processor) sell(accounts []*runtime.Account, in *Sell) error {
	accs, err := pullAccounts(accounts, sellRoles)
	if err != nil {
		return err
	}
	funding, storeAcc, storeATA, client, clientATA, mint := accs[0], accs[1], accs[2], accs[3], accs[4], accs[5]

	if !storeAcc.Owner.Equals(p.programID) {
		return ErrIncorrectProgramID
	}

	decimals, err := runtime.MintDecimals(mint.Data)
	if err != nil {
		return fmt.Errorf("unpack mint: %w", err)
	}
	tokenUnits, err := scaleToBaseUnits(in.Amount, decimals)
	if err != nil {
		return err
	}

	storeBalance, err := tokenBalance(storeATA)
	if err != nil {
		return err
	}
	if storeBalance < tokenUnits {
		return fmt.Errorf("store token balance %d < %d: %w", storeBalance, tokenUnits, ErrInsufficientFunds)
	}
	if err := checkTokenAccountMint(storeATA, mint.Key); err != nil {
		return err
	}

	if !runtime.TokenAccountInitialized(clientATA.Data) {
		if !client.Signer {
			return fmt.Errorf("client account: %w", ErrAccountNotSigner)
		}
		p.logger.Debug("provisioning client token account", zap.String("ata", clientATA.Key.String()))
		if err := p.host.EnsureAccount(funding, clientATA, client, mint); err != nil {
			return fmt.Errorf("ensure client token account: %w", err)
		}
	}
	if err := checkTokenAccountMint(clientATA, mint.Key); err != nil {
		return err
	}

	state, err := LoadState(storeAcc)
	if err != nil {
		return err
	}
	if !state.Initialized() {
		return ErrUninitializedAccount
	}
	cost, err := tradeLamports(in.Amount, state.Price)
	if err != nil {
		return err
	}
	if client.Lamports < cost {
		return fmt.Errorf("client balance %d < %d lamports: %w", client.Lamports, cost, ErrInsufficientFunds)
	}

	if err := checkDerivedAddress(p.host, storeATA, storeAcc.Key, mint.Key); err != nil {
		return err
	}
	if err := checkDerivedAddress(p.host, clientATA, client.Key, mint.Key); err != nil {
		return err
	}

	if err := p.host.Transfer(storeATA, clientATA, storeAcc, tokenUnits); err != nil {
		return fmt.Errorf("token transfer: %w", err)
	}
	if err := client.DebitLamports(cost); err != nil {
		return err
	}
	if err := storeAcc.CreditLamports(cost); err != nil {
		return err
	}

	p.logger.Info("sell settled",
		zap.String("client", client.Key.String()),
		zap.Float64("amount", in.Amount),
		zap.Uint64("token_units", tokenUnits),
		zap.Float64("price", state.Price),
		zap.Uint64("lamports", cost))
	return nil
}
