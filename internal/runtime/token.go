package runtime

import (
	"encoding/binary"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// SPL token account and mint layouts, fixed-width little-endian.
const (
	TokenAccountSize = 165
	MintSize         = 82

	tokenAccountMintOffset   = 0
	tokenAccountOwnerOffset  = 32
	tokenAccountAmountOffset = 64
	tokenAccountStateOffset  = 108
	mintSupplyOffset         = 36
	mintDecimalsOffset       = 44
	mintIsInitializedOffset  = 45
	tokenAccountStateInitial = 1
)

var (
	ErrNotTokenAccount = errors.New("account data is not a token account")
	ErrNotMintAccount  = errors.New("account data is not a mint")
)

// TokenAccountMint reads the mint recorded in a packed token account.
func TokenAccountMint(data []byte) (solana.PublicKey, error) {
	if len(data) != TokenAccountSize {
		return solana.PublicKey{}, ErrNotTokenAccount
	}
	return solana.PublicKeyFromBytes(data[tokenAccountMintOffset : tokenAccountMintOffset+32]), nil
}

// TokenAccountOwner reads the wallet that owns a packed token account.
func TokenAccountOwner(data []byte) (solana.PublicKey, error) {
	if len(data) != TokenAccountSize {
		return solana.PublicKey{}, ErrNotTokenAccount
	}
	return solana.PublicKeyFromBytes(data[tokenAccountOwnerOffset : tokenAccountOwnerOffset+32]), nil
}

// TokenAccountBalance reads the base-unit balance of a packed token account.
func TokenAccountBalance(data []byte) (uint64, error) {
	if len(data) != TokenAccountSize {
		return 0, ErrNotTokenAccount
	}
	return binary.LittleEndian.Uint64(data[tokenAccountAmountOffset : tokenAccountAmountOffset+8]), nil
}

// SetTokenAccountBalance overwrites the base-unit balance in place.
func SetTokenAccountBalance(data []byte, amount uint64) error {
	if len(data) != TokenAccountSize {
		return ErrNotTokenAccount
	}
	binary.LittleEndian.PutUint64(data[tokenAccountAmountOffset:tokenAccountAmountOffset+8], amount)
	return nil
}

// TokenAccountInitialized reports whether the packed token account has been
// initialized by the token service.
func TokenAccountInitialized(data []byte) bool {
	return len(data) == TokenAccountSize && data[tokenAccountStateOffset] == tokenAccountStateInitial
}

// PackTokenAccount builds a packed token account record.
func PackTokenAccount(mint, owner solana.PublicKey, amount uint64) []byte {
	data := make([]byte, TokenAccountSize)
	copy(data[tokenAccountMintOffset:], mint[:])
	copy(data[tokenAccountOwnerOffset:], owner[:])
	binary.LittleEndian.PutUint64(data[tokenAccountAmountOffset:], amount)
	data[tokenAccountStateOffset] = tokenAccountStateInitial
	return data
}

// MintDecimals reads the decimal scale from a packed mint.
func MintDecimals(data []byte) (uint8, error) {
	if len(data) != MintSize {
		return 0, ErrNotMintAccount
	}
	return data[mintDecimalsOffset], nil
}

// MintSupply reads the total supply from a packed mint.
func MintSupply(data []byte) (uint64, error) {
	if len(data) != MintSize {
		return 0, ErrNotMintAccount
	}
	return binary.LittleEndian.Uint64(data[mintSupplyOffset : mintSupplyOffset+8]), nil
}

// SetMintSupply overwrites the total supply in place.
func SetMintSupply(data []byte, supply uint64) error {
	if len(data) != MintSize {
		return ErrNotMintAccount
	}
	binary.LittleEndian.PutUint64(data[mintSupplyOffset:mintSupplyOffset+8], supply)
	return nil
}

// PackMint builds a packed mint record with the given decimal scale.
func PackMint(decimals uint8, supply uint64) []byte {
	data := make([]byte, MintSize)
	binary.LittleEndian.PutUint64(data[mintSupplyOffset:], supply)
	data[mintDecimalsOffset] = decimals
	data[mintIsInitializedOffset] = 1
	return data
}
