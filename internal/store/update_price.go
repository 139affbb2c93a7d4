package store

import (
	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/runtime"
)

// UpdatePrice account list, positional:
//   - [writable] store account
//   - [signer]   admin identity
var updatePriceRoles = []role{
	{name: "store", writable: true},
	{name: "admin"},
}

func (p *Processor) updatePrice(accounts []*runtime.Account, in *UpdatePrice) error {
	accs, err := pullAccounts(accounts, updatePriceRoles)
	if err != nil {
		return err
	}
	storeAcc, admin := accs[0], accs[1]

	if !storeAcc.Owner.Equals(p.programID) {
		return ErrIncorrectProgramID
	}
	state, err := LoadState(storeAcc)
	if err != nil {
		return err
	}
	if !state.Initialized() {
		return ErrUninitializedAccount
	}
	if err := requireAdmin(state, admin); err != nil {
		return err
	}

	old := state.Price
	state.Price = in.NewPrice
	if err := StoreState(storeAcc, state); err != nil {
		return err
	}

	p.logger.Info("price updated",
		zap.Float64("old_price", old),
		zap.Float64("new_price", in.NewPrice))
	return nil
}
