package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLamportArithmetic(t *testing.T) {
	acc := &Account{Lamports: 100}

	require.NoError(t, acc.CreditLamports(50))
	assert.Equal(t, uint64(150), acc.Lamports)

	require.NoError(t, acc.DebitLamports(150))
	assert.Equal(t, uint64(0), acc.Lamports)

	assert.ErrorIs(t, acc.DebitLamports(1), ErrLamportUnderflow)

	acc.Lamports = math.MaxUint64
	assert.ErrorIs(t, acc.CreditLamports(1), ErrLamportOverflow)
}

func TestCloneIsIndependent(t *testing.T) {
	acc := &Account{Lamports: 10, Data: []byte{1, 2, 3}}
	clone := acc.Clone()

	clone.Lamports = 99
	clone.Data[0] = 42
	assert.Equal(t, uint64(10), acc.Lamports)
	assert.Equal(t, []byte{1, 2, 3}, acc.Data)
}

func TestInitialized(t *testing.T) {
	assert.False(t, (&Account{Lamports: 5}).Initialized())
	assert.True(t, (&Account{Data: []byte{0}}).Initialized())
}
