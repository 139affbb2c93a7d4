package wallet

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromBase58(t *testing.T) {
	generated := solana.NewWallet()
	w, err := New(generated.PrivateKey.String())
	require.NoError(t, err)
	assert.Equal(t, generated.PublicKey(), w.PublicKey)
}

func TestNewRejectsBadKeys(t *testing.T) {
	_, err := New("not-base58-0OIl")
	assert.Error(t, err)

	// Valid base58 but the wrong length for an ed25519 keypair.
	_, err = New("3yZe7d")
	assert.Error(t, err)
}

func TestLoadWallets(t *testing.T) {
	w1 := solana.NewWallet()
	w2 := solana.NewWallet()
	path := filepath.Join(t.TempDir(), "wallets.csv")
	body := fmt.Sprintf("Name,PrivateKey\nstore,%s\nadmin,%s\nbroken,garbage\n",
		w1.PrivateKey.String(), w2.PrivateKey.String())
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	wallets, err := LoadWallets(path)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, w1.PublicKey(), wallets["store"].PublicKey)
	assert.Equal(t, w2.PublicKey(), wallets["admin"].PublicKey)
}

func TestATAIsCached(t *testing.T) {
	w := Generate()
	mint := solana.NewWallet().PublicKey()

	want, _, err := solana.FindAssociatedTokenAddress(w.PublicKey, mint)
	require.NoError(t, err)

	got, err := w.ATA(mint)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := w.ATA(mint)
	require.NoError(t, err)
	assert.Equal(t, want, again)
}
