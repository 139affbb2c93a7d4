package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func validBody() string {
	return fmt.Sprintf(`{
		"rpc_list": ["https://api.devnet.solana.com"],
		"program_id": %q,
		"mint": %q,
		"wallets_file": "wallets.csv",
		"initial_price": 42,
		"extra_lamports": 600000000000
	}`, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validBody()))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://api.devnet.solana.com"}, cfg.RPCList)
	assert.Equal(t, "wallets.csv", cfg.WalletsFile)
	assert.Equal(t, 42.0, cfg.InitialPrice)
	assert.Equal(t, uint64(600_000_000_000), cfg.ExtraLamports)

	// Defaults fill the omitted fields.
	assert.Equal(t, DefaultRetries, cfg.Retries)
	assert.Equal(t, DefaultStoreWallet, cfg.StoreWallet)
	assert.Equal(t, DefaultAdminWallet, cfg.AdminWallet)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	key := solana.NewWallet().PublicKey().String()
	cases := map[string]string{
		"empty rpc list": fmt.Sprintf(`{"rpc_list": [], "program_id": %q, "mint": %q, "wallets_file": "w.csv"}`, key, key),
		"bad rpc scheme": fmt.Sprintf(`{"rpc_list": ["ftp://x"], "program_id": %q, "mint": %q, "wallets_file": "w.csv"}`, key, key),
		"bad program id": fmt.Sprintf(`{"rpc_list": ["http://x"], "program_id": "nope", "mint": %q, "wallets_file": "w.csv"}`, key),
		"bad mint":       fmt.Sprintf(`{"rpc_list": ["http://x"], "program_id": %q, "mint": "nope", "wallets_file": "w.csv"}`, key),
		"no wallets":     fmt.Sprintf(`{"rpc_list": ["http://x"], "program_id": %q, "mint": %q}`, key, key),
		"negative price": fmt.Sprintf(`{"rpc_list": ["http://x"], "program_id": %q, "mint": %q, "wallets_file": "w.csv", "initial_price": -1}`, key, key),
	}
	for name, body := range cases {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Error(t, err, name)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SPL_STORE_RPC_LIST", "http://one, http://two")
	override := solana.NewWallet().PublicKey().String()
	t.Setenv("SPL_STORE_MINT", override)

	cfg, err := LoadConfig(writeConfig(t, validBody()))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://one", "http://two"}, cfg.RPCList)
	assert.Equal(t, override, cfg.Mint)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
