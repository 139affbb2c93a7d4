package store

import (
	"bytes"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/splstore/splstore/internal/runtime"
)

// StateSize is the fixed size of the price store record: an 8-byte unit
// price followed by the 32-byte admin identity. No version tag, no padding.
const StateSize = 40

// State is the persisted price store record. It lives in the store account's
// data, is created once by Initialize and only ever mutated in place.
type State struct {
	Price float64
	Admin solana.PublicKey
}

func (s *State) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	if s.Price, err = decoder.ReadFloat64(bin.LE); err != nil {
		return err
	}
	key, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	copy(s.Admin[:], key)
	return nil
}

func (s *State) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteFloat64(s.Price, bin.LE); err != nil {
		return err
	}
	return encoder.WriteBytes(s.Admin[:], false)
}

// Initialized reports whether the record has been written at least once.
// A freshly allocated account is all zeroes, and a zero price is never a
// valid stored state.
func (s *State) Initialized() bool {
	return s.Price != 0
}

// LoadState reads the record from a store account.
func LoadState(acc *runtime.Account) (*State, error) {
	if len(acc.Data) < StateSize {
		return nil, ErrUninitializedAccount
	}
	state := new(State)
	if err := bin.NewBinDecoder(acc.Data[:StateSize]).Decode(state); err != nil {
		return nil, fmt.Errorf("unpack store state: %w", err)
	}
	return state, nil
}

// StoreState writes the record into the store account, enforcing the price
// positivity invariant on every mutation.
func StoreState(acc *runtime.Account, state *State) error {
	if !(state.Price > 0) || math.IsInf(state.Price, 0) {
		return ErrInvalidPrice
	}
	if len(acc.Data) < StateSize {
		return ErrUninitializedAccount
	}
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(state); err != nil {
		return fmt.Errorf("pack store state: %w", err)
	}
	copy(acc.Data[:StateSize], buf.Bytes())
	return nil
}
