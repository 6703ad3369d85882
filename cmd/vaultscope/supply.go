package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vaultScope/internal/chain"
	"vaultScope/internal/config"
)

func newSupplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Print the HAI total supply",
		RunE:  runSupply,
	}
	addCommonFlags(cmd.Flags())
	return cmd
}

func runSupply(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	token, err := chain.NewToken(chainClient, cfg.HAIToken)
	if err != nil {
		return err
	}
	supply, err := token.FormattedTotalSupply(ctx)
	if err != nil {
		return fmt.Errorf("total supply: %w", err)
	}
	logger.Debug("total supply", zap.String("token", token.Address().Hex()), zap.String("supply", supply))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), supply)
	return err
}
