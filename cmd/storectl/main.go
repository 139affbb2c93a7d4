package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/client"
	"github.com/splstore/splstore/internal/config"
	"github.com/splstore/splstore/internal/logger"
	"github.com/splstore/splstore/internal/wallet"
)

const usage = `usage: storectl [-config path] <command> [args]

commands:
  init                       initialize the store at the configured price
  buy <amount> <client>      buy <amount> tokens from the named client wallet
  sell <amount> <client>     sell <amount> tokens to the named client wallet
  set-price <price>          update the unit price (admin wallet signs)
  price                      print the current unit price
  balances <client>          print store and client balances
`

func main() {
	configPath := flag.String("config", "configs/config.json", "path to config file")
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.DebugLogging)
	defer log.Sync()

	wallets, err := wallet.LoadWallets(cfg.WalletsFile)
	if err != nil {
		log.Fatal("Failed to load wallets", zap.Error(err))
	}
	storeW, ok := wallets[cfg.StoreWallet]
	if !ok {
		log.Fatal("Store wallet not found", zap.String("name", cfg.StoreWallet))
	}
	adminW, ok := wallets[cfg.AdminWallet]
	if !ok {
		log.Fatal("Admin wallet not found", zap.String("name", cfg.AdminWallet))
	}

	programID := solana.MustPublicKeyFromBase58(cfg.ProgramID)
	mint := solana.MustPublicKeyFromBase58(cfg.Mint)
	cl := client.New(cfg.RPCList[0], programID, mint, uint(cfg.Retries), log)
	ctx := context.Background()

	if err := run(ctx, cl, log, cfg, wallets, storeW, adminW, args); err != nil {
		log.Fatal("Command failed", zap.Error(err))
	}
}

func run(ctx context.Context, cl *client.Client, log *zap.Logger, cfg *config.Config,
	wallets map[string]*wallet.Wallet, storeW, adminW *wallet.Wallet, args []string) error {

	switch args[0] {
	case "init":
		sig, err := cl.InitializeStore(ctx, adminW, storeW, adminW, cfg.InitialPrice, cfg.ExtraLamports)
		if err != nil {
			return err
		}
		log.Info("Store initialized",
			zap.Float64("price", cfg.InitialPrice),
			zap.String("signature", sig.String()))

	case "buy", "sell":
		if len(args) != 3 {
			return fmt.Errorf("%s takes <amount> <client>", args[0])
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		clientW, ok := wallets[args[2]]
		if !ok {
			return fmt.Errorf("client wallet %q not found", args[2])
		}
		var sig solana.Signature
		if args[0] == "buy" {
			sig, err = cl.Buy(ctx, clientW, storeW.PublicKey, amount)
		} else {
			sig, err = cl.Sell(ctx, storeW, clientW.PublicKey, amount, clientW)
		}
		if err != nil {
			return err
		}
		log.Info("Trade settled",
			zap.String("side", args[0]),
			zap.Float64("amount", amount),
			zap.String("signature", sig.String()))

	case "set-price":
		if len(args) != 2 {
			return fmt.Errorf("set-price takes <price>")
		}
		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", args[1])
		}
		sig, err := cl.UpdatePrice(ctx, adminW, storeW.PublicKey, price)
		if err != nil {
			return err
		}
		log.Info("Price updated",
			zap.Float64("price", price),
			zap.String("signature", sig.String()))

	case "price":
		price, err := cl.Price(ctx, storeW.PublicKey)
		if err != nil {
			return err
		}
		fmt.Println(renderPrice(price))

	case "balances":
		if len(args) != 2 {
			return fmt.Errorf("balances takes <client>")
		}
		clientW, ok := wallets[args[1]]
		if !ok {
			return fmt.Errorf("client wallet %q not found", args[1])
		}
		balances, err := cl.Balances(ctx, storeW.PublicKey, clientW.PublicKey)
		if err != nil {
			return err
		}
		fmt.Println(renderBalances(balances))

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
