package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"
)

// Config is the deployment-side configuration for the store tooling. The
// initial price lives here, out-of-band of the on-chain interface.
type Config struct {
	RPCList       []string `mapstructure:"rpc_list"`
	ProgramID     string   `mapstructure:"program_id"`
	Mint          string   `mapstructure:"mint"`
	WalletsFile   string   `mapstructure:"wallets_file"`
	StoreWallet   string   `mapstructure:"store_wallet"`
	AdminWallet   string   `mapstructure:"admin_wallet"`
	InitialPrice  float64  `mapstructure:"initial_price"`
	ExtraLamports uint64   `mapstructure:"extra_lamports"`
	Retries       int      `mapstructure:"retries"`
	DebugLogging  bool     `mapstructure:"debug_logging"`
}

const (
	DefaultRetries     = 3
	DefaultStoreWallet = "store"
	DefaultAdminWallet = "admin"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("store_wallet", DefaultStoreWallet)
	v.SetDefault("admin_wallet", DefaultAdminWallet)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURL(rpcURL, "http"); err != nil {
			return errors.New("invalid RPC URL protocol")
		}
	}
	if _, err := solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
		return errors.New("invalid program_id")
	}
	if _, err := solana.PublicKeyFromBase58(cfg.Mint); err != nil {
		return errors.New("invalid mint")
	}
	if cfg.WalletsFile == "" {
		return errors.New("missing wallets_file in configuration")
	}
	if cfg.InitialPrice < 0 {
		return errors.New("invalid initial_price")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("SPL_STORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envRPCList := v.GetString("RPC_LIST"); envRPCList != "" {
		var cleanRPCs []string
		for _, rpc := range strings.Split(envRPCList, ",") {
			if clean := strings.TrimSpace(rpc); clean != "" {
				cleanRPCs = append(cleanRPCs, clean)
			}
		}
		if len(cleanRPCs) > 0 {
			cfg.RPCList = cleanRPCs
		}
	}
	if envProgram := v.GetString("PROGRAM_ID"); envProgram != "" {
		cfg.ProgramID = envProgram
	}
	if envMint := v.GetString("MINT"); envMint != "" {
		cfg.Mint = envMint
	}
}
