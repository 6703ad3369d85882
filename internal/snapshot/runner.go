// Package snapshot captures the derived state of every safe and persists it.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vaultScope/internal/model"
	"vaultScope/internal/retry"
	"vaultScope/internal/storage"
	"vaultScope/internal/vault"
)

// Source provides safes and protocol state.
type Source interface {
	SafesPage(ctx context.Context, first int, lastID string) ([]model.Safe, error)
	LiquidationData(ctx context.Context) (*model.LiquidationData, error)
}

// RunConfig holds runtime settings for a snapshot run.
type RunConfig struct {
	ChainID      uint64
	PageSize     int
	MaxPages     int
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner pages through all safes and writes one snapshot per safe.
type Runner struct {
	cfg     RunConfig
	source  Source
	storage storage.Storage
	state   StateStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewRunner builds a Runner. A nil state disables checkpointing.
func NewRunner(cfg RunConfig, source Source, sink storage.Storage, state StateStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		source:  source,
		storage: sink,
		state:   state,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Result summarizes a run.
type Result struct {
	Pages      int
	Snapshots  int
	Complete   bool
	CapturedAt time.Time
}

// Run executes the snapshot loop. An interrupted run resumes from its
// checkpoint with the same capture time; a finished run resets it.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.source == nil {
		return Result{}, fmt.Errorf("source is nil")
	}
	if r.storage == nil {
		return Result{}, fmt.Errorf("storage is nil")
	}
	if r.cfg.PageSize <= 0 {
		return Result{}, fmt.Errorf("page size must be greater than zero")
	}

	cp := Checkpoint{CapturedAt: r.now()}
	if r.state != nil {
		saved, ok, err := r.state.Load(ctx)
		if err != nil {
			return Result{}, err
		}
		if ok && saved.Cursor != "" {
			cp = saved
			r.logger.Info("resume from checkpoint", zap.String("cursor", cp.Cursor), zap.Time("captured_at", cp.CapturedAt))
		}
	}

	liq, err := r.liquidationDataWithRetry(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("liquidation data: %w", err)
	}

	result := Result{CapturedAt: cp.CapturedAt}
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if r.cfg.MaxPages > 0 && result.Pages >= r.cfg.MaxPages {
			r.logger.Info("page limit reached", zap.Int("pages", result.Pages), zap.String("cursor", cp.Cursor))
			return result, nil
		}

		safes, err := r.safesPageWithRetry(ctx, cp.Cursor)
		if err != nil {
			return result, fmt.Errorf("safes page after %q: %w", cp.Cursor, err)
		}
		if len(safes) == 0 {
			break
		}

		snapshots := make([]model.VaultSnapshot, 0, len(safes))
		for i := range safes {
			snap, err := Build(r.cfg.ChainID, &safes[i], liq, cp.CapturedAt)
			if err != nil {
				r.logger.Warn("skip safe", zap.String("safe", safes[i].ID), zap.Error(err))
				continue
			}
			snapshots = append(snapshots, snap)
		}

		if err := r.storage.PutSnapshotBatch(ctx, snapshots); err != nil {
			return result, fmt.Errorf("store snapshots: %w", err)
		}

		cp.Cursor = safes[len(safes)-1].ID
		if r.state != nil {
			if err := r.state.Save(ctx, cp); err != nil {
				return result, err
			}
		}

		result.Pages++
		result.Snapshots += len(snapshots)
		r.logger.Info("page complete", zap.Int("safes", len(safes)), zap.Int("snapshots", len(snapshots)), zap.String("cursor", cp.Cursor))

		if len(safes) < r.cfg.PageSize {
			break
		}
	}

	if r.state != nil {
		if err := r.state.Save(ctx, Checkpoint{}); err != nil {
			return result, err
		}
	}
	result.Complete = true
	r.logger.Info("snapshot complete", zap.Int("pages", result.Pages), zap.Int("snapshots", result.Snapshots))
	return result, nil
}

// Build derives the snapshot of a single safe.
func Build(chainID uint64, safe *model.Safe, liq *model.LiquidationData, capturedAt time.Time) (model.VaultSnapshot, error) {
	state, err := vault.Derive(vault.DeriveInput{
		Vault:          safe,
		CollateralName: safe.CollateralName,
		Action:         vault.ActionInfo,
		Env:            vault.Env{Liquidation: liq},
	})
	if err != nil {
		return model.VaultSnapshot{}, err
	}
	return model.VaultSnapshot{
		ChainID:          chainID,
		SafeID:           safe.ID,
		Owner:            safe.Owner,
		CollateralName:   safe.CollateralName,
		Collateral:       state.Collateral.Total,
		Debt:             state.Debt.Total,
		CollateralRatio:  state.CollateralRatio,
		LiquidationPrice: state.LiquidationPrice,
		RiskStatus:       string(state.RiskStatus),
		IsSafe:           state.IsSafe,
		CapturedAt:       capturedAt,
	}, nil
}

func (r *Runner) safesPageWithRetry(ctx context.Context, cursor string) ([]model.Safe, error) {
	var safes []model.Safe
	err := retry.Do(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		safes, err = r.source.SafesPage(ctx, r.cfg.PageSize, cursor)
		if err != nil {
			r.logger.Warn("safes page failed", zap.Error(err), zap.String("cursor", cursor))
		}
		return err
	})
	return safes, err
}

func (r *Runner) liquidationDataWithRetry(ctx context.Context) (*model.LiquidationData, error) {
	var liq *model.LiquidationData
	err := retry.Do(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		liq, err = r.source.LiquidationData(ctx)
		if err != nil {
			r.logger.Warn("liquidation data fetch failed", zap.Error(err))
		}
		return err
	})
	return liq, err
}
