package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cenkalti/backoff/v5"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/splstore/splstore/internal/store"
	"github.com/splstore/splstore/internal/wallet"
)

// Client submits store instructions to a cluster and reads store state
// back. It retries transient RPC failures with exponential backoff.
type Client struct {
	rpc     *rpc.Client
	builder *InstructionBuilder
	mint    solana.PublicKey
	retries uint
	logger  *zap.Logger
}

func New(endpoint string, programID, mint solana.PublicKey, retries uint, logger *zap.Logger) *Client {
	if retries == 0 {
		retries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		rpc:     rpc.New(endpoint),
		builder: NewInstructionBuilder(programID, mint),
		mint:    mint,
		retries: retries,
		logger:  logger,
	}
}

// InitializeStore creates (or re-prices) the store account. payer funds
// account creation; extraLamports on top of the rent minimum stocks the
// store's lamport float and must cover its token account rent on first
// initialization.
func (c *Client) InitializeStore(ctx context.Context, payer, storeW, admin *wallet.Wallet, price float64, extraLamports uint64) (solana.Signature, error) {
	instr, err := c.builder.Initialize(payer.PublicKey, storeW.PublicKey, admin.PublicKey, price, extraLamports)
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, instr, payer, storeW, admin)
}

// Buy has the store buy amount tokens from the client; the client signs
// and fronts the fee.
func (c *Client) Buy(ctx context.Context, clientW *wallet.Wallet, storeKey solana.PublicKey, amount float64) (solana.Signature, error) {
	instr, err := c.builder.Buy(clientW.PublicKey, storeKey, clientW.PublicKey, amount)
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, instr, clientW)
}

// Sell has the store sell amount tokens to the client. Pass clientW when
// the client's token account may not exist yet; provisioning it needs the
// client's signature.
func (c *Client) Sell(ctx context.Context, storeW *wallet.Wallet, clientKey solana.PublicKey, amount float64, clientW *wallet.Wallet) (solana.Signature, error) {
	instr, err := c.builder.Sell(storeW.PublicKey, storeW.PublicKey, clientKey, amount, clientW != nil)
	if err != nil {
		return solana.Signature{}, err
	}
	signers := []*wallet.Wallet{}
	if clientW != nil {
		signers = append(signers, clientW)
	}
	return c.send(ctx, instr, storeW, signers...)
}

// UpdatePrice changes the stored unit price; only the recorded admin can.
func (c *Client) UpdatePrice(ctx context.Context, admin *wallet.Wallet, storeKey solana.PublicKey, newPrice float64) (solana.Signature, error) {
	instr, err := c.builder.UpdatePrice(storeKey, admin.PublicKey, newPrice)
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, instr, admin)
}

// Price reads the current unit price from the store account.
func (c *Client) Price(ctx context.Context, storeKey solana.PublicKey) (float64, error) {
	result, err := c.rpc.GetAccountInfo(ctx, storeKey)
	if err != nil {
		return 0, fmt.Errorf("get store account: %w", err)
	}
	data := result.Value.Data.GetBinary()
	state := new(store.State)
	if err := bin.NewBinDecoder(data).Decode(state); err != nil {
		return 0, fmt.Errorf("unpack store state: %w", err)
	}
	return state.Price, nil
}

// Balances is a snapshot of both parties' native and token balances.
type Balances struct {
	StoreLamports  uint64
	ClientLamports uint64
	StoreTokens    uint64
	ClientTokens   uint64
}

// Balances fetches the four balances concurrently. Missing token accounts
// read as zero.
func (c *Client) Balances(ctx context.Context, storeKey, clientKey solana.PublicKey) (*Balances, error) {
	storeATA, _, err := solana.FindAssociatedTokenAddress(storeKey, c.mint)
	if err != nil {
		return nil, err
	}
	clientATA, _, err := solana.FindAssociatedTokenAddress(clientKey, c.mint)
	if err != nil {
		return nil, err
	}

	balances := new(Balances)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := c.rpc.GetBalance(ctx, storeKey, rpc.CommitmentConfirmed)
		if err != nil {
			return fmt.Errorf("store balance: %w", err)
		}
		balances.StoreLamports = out.Value
		return nil
	})
	g.Go(func() error {
		out, err := c.rpc.GetBalance(ctx, clientKey, rpc.CommitmentConfirmed)
		if err != nil {
			return fmt.Errorf("client balance: %w", err)
		}
		balances.ClientLamports = out.Value
		return nil
	})
	g.Go(func() error {
		balances.StoreTokens = c.tokenBalance(ctx, storeATA)
		return nil
	})
	g.Go(func() error {
		balances.ClientTokens = c.tokenBalance(ctx, clientATA)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return balances, nil
}

func (c *Client) tokenBalance(ctx context.Context, ata solana.PublicKey) uint64 {
	out, err := c.rpc.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	if err != nil {
		c.logger.Debug("token balance unavailable, reading as zero",
			zap.String("ata", ata.String()), zap.Error(err))
		return 0
	}
	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0
	}
	return amount
}

func (c *Client) send(ctx context.Context, instr solana.Instruction, payer *wallet.Wallet, signers ...*wallet.Wallet) (solana.Signature, error) {
	wallets := append([]*wallet.Wallet{payer}, signers...)
	operation := func() (solana.Signature, error) {
		recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("get blockhash: %w", err)
		}
		tx, err := solana.NewTransaction(
			[]solana.Instruction{instr},
			recent.Value.Blockhash,
			solana.TransactionPayer(payer.PublicKey),
		)
		if err != nil {
			return solana.Signature{}, backoff.Permanent(fmt.Errorf("build transaction: %w", err))
		}
		if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
			for _, w := range wallets {
				if key.Equals(w.PublicKey) {
					return &w.PrivateKey
				}
			}
			return nil
		}); err != nil {
			return solana.Signature{}, backoff.Permanent(fmt.Errorf("sign transaction: %w", err))
		}

		sig, err := c.rpc.SendTransaction(ctx, tx)
		if err != nil {
			c.logger.Warn("send transaction failed, retrying", zap.Error(err))
			return solana.Signature{}, err
		}
		return sig, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.retries))
}
