package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"vaultScope/internal/auction"
	"vaultScope/internal/config"
	"vaultScope/internal/dashboard"
	"vaultScope/internal/format"
)

func newAuctionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auctions",
		Short: "List collateral, debt and surplus auctions",
		RunE:  runAuctions,
	}
	addCommonFlags(cmd.Flags())
	addWalletFlags(cmd.Flags())
	cmd.Flags().String("type", "", "COLLATERAL, DEBT or SURPLUS (default all)")
	cmd.Flags().String("asset", "", "sale asset symbol, e.g. WETH")
	cmd.Flags().String("status", "", "Live, Settling, Restarting or Completed")
	cmd.Flags().String("sort", "Time Left", "sort column")
	cmd.Flags().String("dir", "desc", "sort direction (asc, desc)")
	cmd.Flags().Bool("my-bids", false, "only auctions the wallet bid on")
	cmd.Flags().Int("auction-limit", 500, "maximum auctions fetched per type")
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func runAuctions(cmd *cobra.Command, _ []string) error {
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
	q := dashboard.AuctionQuery{Wallet: cfg.WalletAddress, Proxy: cfg.ProxyAddress}
	q.Type, _ = flags.GetString("type")
	q.Asset, _ = flags.GetString("asset")
	q.Status, _ = flags.GetString("status")
	q.Sort, _ = flags.GetString("sort")
	q.Dir, _ = flags.GetString("dir")
	q.MyBidsOnly, _ = flags.GetBool("my-bids")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := newService(ctx, cfg, 0, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := svc.Auctions(ctx, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := flags.GetBool("json"); asJSON {
		return writeJSON(out, rows)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AUCTION\tTYPE\tFOR SALE\tBUY WITH\tTIME LEFT\tMY BIDS\tSTATUS")
	now := time.Now()
	for _, row := range rows {
		fmt.Fprintf(tw, "#%s\t%s\t%s %s\t%s %s\t%s\t%d\t%s\n",
			row.AuctionID,
			row.EnglishAuctionType,
			format.Amount(row.SellInitialAmount), auction.TokenSymbol(row.SellToken),
			format.Amount(row.BuyInitialAmount), auction.TokenSymbol(row.BuyToken),
			timeLeft(row.AuctionDeadline, now),
			row.MyBids,
			row.Status,
		)
	}
	return tw.Flush()
}

func timeLeft(deadline string, now time.Time) string {
	var unix int64
	if _, err := fmt.Sscan(deadline, &unix); err != nil || unix == 0 {
		return "-"
	}
	left := time.Unix(unix, 0).Sub(now)
	if left <= 0 {
		return "ended"
	}
	return left.Truncate(time.Minute).String()
}
