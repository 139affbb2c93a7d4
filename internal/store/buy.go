package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/runtime"
)

// Buy account list, positional:
//   - [writable, signer] funding account (pays when the store ATA is created)
//   - [writable]         store account (lamport source)
//   - [writable]         store associated token account (token recipient)
//   - [writable, signer] client account (lamport recipient, token owner)
//   - [writable]         client associated token account (token source)
//   - []                 token mint
//   - []                 token program
var buyRoles = []role{
	{name: "funding", writable: true, signer: true},
	{name: "store", writable: true},
	{name: "store token", writable: true},
	{name: "client", writable: true, signer: true},
	{name: "client token", writable: true},
	{name: "mint"},
	{name: "token program"},
}

// buy moves tokens client -> store and lamports store -> client at the
// stored unit price.
func (p *Processor) buy(accounts []*runtime.Account, in *Buy) error {
	accs, err := pullAccounts(accounts, buyRoles)
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

	clientBalance, err := tokenBalance(clientATA)
	if err != nil {
		return err
	}
	if clientBalance < tokenUnits {
		return fmt.Errorf("client token balance %d < %d: %w", clientBalance, tokenUnits, ErrInsufficientFunds)
	}
	if err := checkTokenAccountMint(clientATA, mint.Key); err != nil {
		return err
	}

	if !runtime.TokenAccountInitialized(storeATA.Data) {
		p.logger.Debug("provisioning store token account", zap.String("ata", storeATA.Key.String()))
		if err := p.host.EnsureAccount(funding, storeATA, storeAcc, mint); err != nil {
			return fmt.Errorf("ensure store token account: %w", err)
		}
	}
	// The creation step could have been handed an unrelated account;
	// check the mint again before using it.
	if err := checkTokenAccountMint(storeATA, mint.Key); err != nil {
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
	if storeAcc.Lamports < cost {
		return fmt.Errorf("store balance %d < %d lamports: %w", storeAcc.Lamports, cost, ErrInsufficientFunds)
	}

	if err := checkDerivedAddress(p.host, storeATA, storeAcc.Key, mint.Key); err != nil {
		return err
	}
	if err := checkDerivedAddress(p.host, clientATA, client.Key, mint.Key); err != nil {
		return err
	}

	if err := p.host.Transfer(clientATA, storeATA, client, tokenUnits); err != nil {
		return fmt.Errorf("token transfer: %w", err)
	}
	if err := storeAcc.DebitLamports(cost); err != nil {
		return err
	}
	if err := client.CreditLamports(cost); err != nil {
		return err
	}

	p.logger.Info("buy settled",
		zap.String("client", client.Key.String()),
		zap.Float64("amount", in.Amount),
		zap.Uint64("token_units", tokenUnits),
		zap.Float64("price", state.Price),
		zap.Uint64("lamports", cost))
	return nil
}
