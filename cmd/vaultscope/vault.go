package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vaultScope/internal/config"
	"vaultScope/internal/dashboard"
	"vaultScope/internal/format"
	"vaultScope/internal/vault"
)

func newVaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Show one vault by id, or every vault of an owner",
		RunE:  runVault,
	}
	addCommonFlags(cmd.Flags())
	addWalletFlags(cmd.Flags())
	cmd.Flags().String("id", "", "vault id")
	cmd.Flags().String("owner", "", "owner address")
	cmd.Flags().Bool("json", false, "print the owner list as JSON")
	return cmd
}

func runVault(cmd *cobra.Command, _ []string) error {
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

	id, _ := cmd.Flags().GetString("id")
	owner, _ := cmd.Flags().GetString("owner")
	if (id == "") == (owner == "") {
		return fmt.Errorf("exactly one of --id or --owner is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := newService(ctx, cfg, 0, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	if id != "" {
		state, err := svc.VaultState(ctx, dashboard.StateRequest{
			ID:     id,
			Action: vault.ActionInfo.String(),
			Wallet: cfg.WalletAddress,
			Proxy:  cfg.ProxyAddress,
		})
		if err != nil {
			return err
		}
		return writeJSON(out, state)
	}

	vaults, err := svc.Vaults(ctx, owner)
	if err != nil {
		return err
	}
	logger.Debug("vaults loaded", zap.String("owner", owner), zap.Int("count", len(vaults)))
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, vaults)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLLATERAL\tDEBT\tRATIO\tLIQ PRICE\tSTATUS")
	for _, v := range vaults {
		fmt.Fprintf(tw, "#%s\t%s %s\t%s HAI\t%s\t%s\t%s\n",
			v.SafeID,
			format.Amount(v.Collateral), v.CollateralName,
			format.Amount(v.Debt),
			format.Number(v.CollateralRatio, format.Options{Style: format.StylePercent}),
			format.USD(v.LiquidationPrice),
			v.RiskStatus,
		)
	}
	return tw.Flush()
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a deposit, borrow, withdraw or repay on a vault",
		RunE:  runSimulate,
	}
	addCommonFlags(cmd.Flags())
	addWalletFlags(cmd.Flags())
	cmd.Flags().String("id", "", "vault id")
	cmd.Flags().Bool("create", false, "simulate opening a new vault")
	cmd.Flags().String("collateral", "", "collateral name for a new vault")
	cmd.Flags().String("action", "", "deposit_borrow, withdraw_repay, create or info")
	cmd.Flags().String("deposit", "", "collateral to deposit")
	cmd.Flags().String("borrow", "", "HAI to borrow")
	cmd.Flags().String("withdraw", "", "collateral to withdraw")
	cmd.Flags().String("repay", "", "HAI to repay")
	return cmd
}

func runSimulate(cmd *cobra.Command, _ []string) error {
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

	flags := cmd.Flags()
	req := dashboard.StateRequest{Wallet: cfg.WalletAddress, Proxy: cfg.ProxyAddress}
	req.ID, _ = flags.GetString("id")
	req.Create, _ = flags.GetBool("create")
	req.CollateralName, _ = flags.GetString("collateral")
	req.Action, _ = flags.GetString("action")
	req.Form.Deposit, _ = flags.GetString("deposit")
	req.Form.Borrow, _ = flags.GetString("borrow")
	req.Form.Withdraw, _ = flags.GetString("withdraw")
	req.Form.Repay, _ = flags.GetString("repay")
	if req.Create && req.ID != "" {
		return fmt.Errorf("--create and --id are mutually exclusive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := newService(ctx, cfg, 0, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := svc.VaultState(ctx, req)
	if err != nil {
		return err
	}
	if state.Error != "" {
		logger.Warn("simulation rejected", zap.String("error", state.Error), zap.String("message", state.ErrorMessage))
	}
	return writeJSON(cmd.OutOrStdout(), state)
}
