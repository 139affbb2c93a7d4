// Package store implements the token store program: a settlement engine
// that sells one fungible token at an admin-settable unit price and buys it
// back at the same price, paying in the native currency.
package store

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Instruction discriminants, one byte on the wire.
const (
	TagInitialize = iota
	TagBuy
	TagSell
	TagUpdatePrice
)

// Instruction is one decoded store operation.
type Instruction interface {
	MarshalWithEncoder(encoder *bin.Encoder) error
	storeInstruction()
}

// Initialize creates (or re-prices) the store account, records the admin
// identity and ensures the store's associated token account exists.
// ExtraLamports is added on top of the rent-exempt minimum when the store
// account has to be created.
type Initialize struct {
	Price         float64
	ExtraLamports uint64
}

// Buy has the store buy Amount tokens from a client at the stored price.
// Amount is human-scale; handlers scale it by the mint decimals.
type Buy struct {
	Amount float64
}

// Sell has the store sell Amount tokens to a client at the stored price.
type Sell struct {
	Amount float64
}

// UpdatePrice replaces the stored unit price. Admin-gated.
type UpdatePrice struct {
	NewPrice float64
}

func (*Initialize) storeInstruction()  {}
func (*Buy) storeInstruction()         {}
func (*Sell) storeInstruction()        {}
func (*UpdatePrice) storeInstruction() {}

// DecodeInstruction parses an instruction payload. Unknown discriminants,
// truncated payloads and trailing bytes all fail with ErrMalformedInstruction.
func DecodeInstruction(data []byte) (Instruction, error) {
	decoder := bin.NewBinDecoder(data)
	tag, err := decoder.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedInstruction)
	}

	var instr Instruction
	switch tag {
	case TagInitialize:
		instr = new(Initialize)
	case TagBuy:
		instr = new(Buy)
	case TagSell:
		instr = new(Sell)
	case TagUpdatePrice:
		instr = new(UpdatePrice)
	default:
		return nil, fmt.Errorf("%w: unknown discriminant %d", ErrMalformedInstruction, tag)
	}

	if err := decoder.Decode(instr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
	}
	if decoder.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedInstruction, decoder.Remaining())
	}
	return instr, nil
}

// EncodeInstruction builds the wire payload for an instruction.
func EncodeInstruction(instr Instruction) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	if err := instr.MarshalWithEncoder(encoder); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (in *Initialize) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	if in.Price, err = decoder.ReadFloat64(bin.LE); err != nil {
		return err
	}
	in.ExtraLamports, err = decoder.ReadUint64(bin.LE)
	return err
}

func (in *Initialize) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(TagInitialize); err != nil {
		return err
	}
	if err := encoder.WriteFloat64(in.Price, bin.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(in.ExtraLamports, bin.LE)
}

func (in *Buy) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	in.Amount, err = decoder.ReadFloat64(bin.LE)
	return err
}

func (in *Buy) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(TagBuy); err != nil {
		return err
	}
	return encoder.WriteFloat64(in.Amount, bin.LE)
}

func (in *Sell) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	in.Amount, err = decoder.ReadFloat64(bin.LE)
	return err
}

func (in *Sell) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(TagSell); err != nil {
		return err
	}
	return encoder.WriteFloat64(in.Amount, bin.LE)
}

func (in *UpdatePrice) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	in.NewPrice, err = decoder.ReadFloat64(bin.LE)
	return err
}

func (in *UpdatePrice) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(TagUpdatePrice); err != nil {
		return err
	}
	return encoder.WriteFloat64(in.NewPrice, bin.LE)
}
