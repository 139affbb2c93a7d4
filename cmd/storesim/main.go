// storesim runs the full store flow against the in-memory sandbox:
// initialize, buy, price update, sell. Useful for exercising the processor
// end to end without a cluster.
package main

import (
	"os"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/client"
	"github.com/splstore/splstore/internal/logger"
	"github.com/splstore/splstore/internal/sandbox"
	"github.com/splstore/splstore/internal/store"
	"github.com/splstore/splstore/internal/wallet"
)

func main() {
	log := logger.New(true)
	defer log.Sync()

	programID := solana.NewWallet().PublicKey()
	ledger := sandbox.NewLedger(log.Named("sandbox"))
	processor := store.NewProcessor(programID, ledger, log.Named("store"))

	payerW := wallet.Generate()
	storeW := wallet.Generate()
	adminW := wallet.Generate()
	clientW := wallet.Generate()

	mint := ledger.CreateMint(9)
	builder := client.NewInstructionBuilder(programID, mint)

	ledger.FundWallet(payerW.PublicKey, 1_000*solana.LAMPORTS_PER_SOL)
	ledger.FundWallet(clientW.PublicKey, 500*solana.LAMPORTS_PER_SOL)
	if err := ledger.MintTo(mint, clientW.PublicKey, 14_000_000_000); err != nil {
		log.Fatal("Failed to mint", zap.Error(err))
	}

	execute := func(name string, instr solana.Instruction, err error) {
		if err != nil {
			log.Fatal("Failed to build instruction", zap.String("op", name), zap.Error(err))
		}
		data, err := instr.Data()
		if err != nil {
			log.Fatal("Failed to serialize instruction", zap.String("op", name), zap.Error(err))
		}
		if err := ledger.Execute(processor, instr.Accounts(), data); err != nil {
			log.Error("Instruction aborted", zap.String("op", name), zap.Error(err))
			os.Exit(1)
		}
		log.Info("Committed",
			zap.String("op", name),
			zap.Uint64("store_lamports", ledger.Balance(storeW.PublicKey)),
			zap.Uint64("client_lamports", ledger.Balance(clientW.PublicKey)),
			zap.Uint64("store_tokens", ledger.TokenBalance(storeW.PublicKey, mint)),
			zap.Uint64("client_tokens", ledger.TokenBalance(clientW.PublicKey, mint)))
	}

	// Extra funding stocks the store's lamport float and covers the store
	// token account's rent.
	extra := 600 * solana.LAMPORTS_PER_SOL
	instr, err := builder.Initialize(payerW.PublicKey, storeW.PublicKey, adminW.PublicKey, 42, extra)
	execute("initialize", instr, err)

	instr, err = builder.Buy(clientW.PublicKey, storeW.PublicKey, clientW.PublicKey, 14)
	execute("buy", instr, err)

	instr, err = builder.UpdatePrice(storeW.PublicKey, adminW.PublicKey, 37)
	execute("update-price", instr, err)

	instr, err = builder.Sell(storeW.PublicKey, storeW.PublicKey, clientW.PublicKey, 7, true)
	execute("sell", instr, err)
}
