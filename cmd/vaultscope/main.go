package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vaultScope/internal/chain"
	"vaultScope/internal/config"
	"vaultScope/internal/dashboard"
	"vaultScope/internal/subgraph"
)

func main() {
	root := &cobra.Command{
		Use:          "vaultscope",
		Short:        "HAI vault dashboard toolkit",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(
		newVaultCmd(),
		newSimulateCmd(),
		newAuctionsCmd(),
		newSupplyCmd(),
		newContractsCmd(),
		newSnapshotCmd(),
		newServeCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(fs *pflag.FlagSet) {
	fs.String("rpc", "", "Optimism RPC URL (enables balances and supply)")
	fs.String("subgraph", "", "subgraph GraphQL endpoint")
	fs.Duration("subgraph-timeout", 15*time.Second, "subgraph request timeout")
	fs.String("hai-token", config.DefaultHAIToken, "HAI token address")
	fs.String("collateral-tokens", "", "collateral token addresses (comma-separated name=address)")
	fs.String("contracts", "", "protocol contract addresses (comma-separated name=address)")
	fs.Int("max-retries", 5, "maximum retry attempts")
	fs.Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

func addWalletFlags(fs *pflag.FlagSet) {
	fs.String("wallet", "", "connected wallet address")
	fs.String("proxy", "", "wallet proxy address")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func newSubgraphClient(cfg config.Config, logger *zap.Logger) (*subgraph.Client, error) {
	if cfg.SubgraphURL == "" {
		return nil, fmt.Errorf("subgraph url is required")
	}
	return subgraph.NewClient(subgraph.Config{
		Endpoint:     cfg.SubgraphURL,
		Timeout:      cfg.SubgraphTimeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, nil, logger)
}

// newService wires the subgraph and, when an RPC URL is set, the chain
// readers. The returned func releases the RPC connection.
func newService(ctx context.Context, cfg config.Config, chainID uint64, logger *zap.Logger) (*dashboard.Service, func(), error) {
	sg, err := newSubgraphClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	deps := dashboard.Deps{Vaults: sg, Auctions: sg}
	cleanup := func() {}
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rpc: %w", err)
		}
		wallet, err := chain.NewWallet(chainClient, cfg.HAIToken, cfg.CollateralTokens)
		if err != nil {
			chainClient.Close()
			return nil, nil, err
		}
		deps.Balances = wallet
		deps.Supply = wallet.HAI()
		cleanup = chainClient.Close
	}

	svc := dashboard.New(dashboard.Config{
		ChainID:      chainID,
		Contracts:    cfg.Contracts,
		AuctionLimit: cfg.AuctionLimit,
	}, deps, logger)
	return svc, cleanup, nil
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
