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
	"vaultScope/internal/snapshot"
	"vaultScope/internal/storage"
	"vaultScope/internal/storage/postgres"
	"vaultScope/internal/subgraph"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the derived state of every vault",
		RunE:  runSnapshot,
	}
	addCommonFlags(cmd.Flags())
	cmd.Flags().Uint64("chain-id", 10, "chain id recorded on snapshots (read from --rpc when set)")
	cmd.Flags().String("out", "./data/snapshots.jsonl", "output JSONL path, empty to disable")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("state-file", "", "optional local state file for progress tracking")
	cmd.Flags().String("state-name", "snapshot", "indexer_state row name")
	cmd.Flags().Int("page-size", 500, "safes per subgraph page")
	cmd.Flags().Int("max-pages", 0, "stop after this many pages, 0 means all")
	return cmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSnapshot(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Out == "" && cfg.PGDSN == "" {
		return fmt.Errorf("at least one of out or pg dsn is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sg, err := newSnapshotSource(cfg.Config, logger)
	if err != nil {
		return err
	}

	chainID := cfg.ChainID
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		id, err := chainClient.GetChainID(ctx)
		chainClient.Close()
		if err != nil {
			return fmt.Errorf("get chain id: %w", err)
		}
		if !id.IsUint64() {
			return fmt.Errorf("chain id does not fit in uint64: %s", id)
		}
		chainID = id.Uint64()
	}

	var sinks storage.Multi
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	var stateStore snapshot.StateStore
	switch {
	case cfg.StateFile != "":
		stateStore = &snapshot.FileStateStore{Path: cfg.StateFile}
	case store != nil:
		stateStore = &snapshot.DBStateStore{Store: store, Name: fmt.Sprintf("%s:%d", cfg.StateName, chainID)}
	}

	runner := snapshot.NewRunner(snapshot.RunConfig{
		ChainID:      chainID,
		PageSize:     cfg.PageSize,
		MaxPages:     cfg.MaxPages,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, sg, sinks, stateStore, logger)

	logger.Info("snapshot start",
		zap.String("subgraph", cfg.SubgraphURL),
		zap.Uint64("chain_id", chainID),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.String("state_file", cfg.StateFile),
		zap.Int("page_size", cfg.PageSize),
	)

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("snapshot done",
		zap.Int("pages", result.Pages),
		zap.Int("snapshots", result.Snapshots),
		zap.Bool("complete", result.Complete),
		zap.Time("captured_at", result.CapturedAt),
	)
	return nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}

// newSnapshotSource builds a subgraph client that makes a single attempt per
// query. The runner retries whole pages with the configured backoff.
func newSnapshotSource(cfg config.Config, logger *zap.Logger) (*subgraph.Client, error) {
	cfg.MaxRetries = 0
	return newSubgraphClient(cfg, logger)
}
