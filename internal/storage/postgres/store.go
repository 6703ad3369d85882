package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vaultScope/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS vault_snapshots (
	chain_id          BIGINT      NOT NULL,
	safe_id           TEXT        NOT NULL,
	captured_at       TIMESTAMPTZ NOT NULL,
	owner             TEXT        NOT NULL DEFAULT '',
	collateral_name   TEXT        NOT NULL,
	collateral        NUMERIC     NOT NULL,
	debt              NUMERIC     NOT NULL,
	collateral_ratio  TEXT        NOT NULL,
	liquidation_price TEXT        NOT NULL,
	risk_status       TEXT        NOT NULL,
	is_safe           BOOLEAN     NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, safe_id, captured_at)
);

CREATE TABLE IF NOT EXISTS indexer_state (
	name       TEXT PRIMARY KEY,
	cursor     TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for vault snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the snapshot and state tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutSnapshotBatch upserts snapshots; it satisfies storage.Storage.
func (s *Store) PutSnapshotBatch(ctx context.Context, snapshots []model.VaultSnapshot) error {
	return s.UpsertVaultSnapshots(ctx, snapshots)
}

// UpsertVaultSnapshots inserts or updates snapshots keyed by chain, safe and capture time.
func (s *Store) UpsertVaultSnapshots(ctx context.Context, snapshots []model.VaultSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range snapshots {
		batch.Queue(`
			INSERT INTO vault_snapshots (
				chain_id, safe_id, captured_at, owner, collateral_name, collateral, debt,
				collateral_ratio, liquidation_price, risk_status, is_safe, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (chain_id, safe_id, captured_at)
			DO UPDATE SET
				owner = EXCLUDED.owner,
				collateral_name = EXCLUDED.collateral_name,
				collateral = EXCLUDED.collateral,
				debt = EXCLUDED.debt,
				collateral_ratio = EXCLUDED.collateral_ratio,
				liquidation_price = EXCLUDED.liquidation_price,
				risk_status = EXCLUDED.risk_status,
				is_safe = EXCLUDED.is_safe,
				updated_at = now()
		`,
			int64(snap.ChainID),
			snap.SafeID,
			snap.CapturedAt,
			snap.Owner,
			snap.CollateralName,
			numeric(snap.Collateral),
			numeric(snap.Debt),
			snap.CollateralRatio,
			snap.LiquidationPrice,
			snap.RiskStatus,
			snap.IsSafe,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for _, snap := range snapshots {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert snapshot %s: %w", snap.SafeID, err)
		}
	}
	return nil
}

// LoadState returns the saved cursor for a name.
func (s *Store) LoadState(ctx context.Context, name string) (string, bool, error) {
	if name == "" {
		return "", false, fmt.Errorf("state name required")
	}
	var cursor string
	row := s.pool.QueryRow(ctx, `SELECT cursor FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&cursor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return cursor, true, nil
}

// SaveState upserts the cursor for a name.
func (s *Store) SaveState(ctx context.Context, name string, cursor string) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, cursor, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET cursor = EXCLUDED.cursor, updated_at = now()
	`, name, cursor)
	return err
}

// numeric maps an empty amount to zero so NUMERIC columns accept it.
func numeric(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
