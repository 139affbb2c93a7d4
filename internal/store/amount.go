package store

import (
	"math"

	"github.com/gagliardetto/solana-go"
)

// Trade amounts and prices are human-scale on the wire; everything below
// converts them to the integer units the ledgers understand. The same
// conversion is used by every handler.

// scaleToBaseUnits converts a human-scale token amount into base units
// using the mint's decimal scale.
func scaleToBaseUnits(amount float64, decimals uint8) (uint64, error) {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	units := amount * math.Pow10(int(decimals))
	if units >= math.MaxUint64 {
		return 0, ErrAmountOverflow
	}
	return uint64(math.Round(units)), nil
}

// tradeLamports computes the native cost of amount tokens at the given unit
// price, in lamports.
func tradeLamports(amount, price float64) (uint64, error) {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	if !(price > 0) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrice
	}
	lamports := amount * price * float64(solana.LAMPORTS_PER_SOL)
	if lamports >= math.MaxUint64 {
		return 0, ErrAmountOverflow
	}
	return uint64(math.Round(lamports)), nil
}
