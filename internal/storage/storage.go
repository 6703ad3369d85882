package storage

import (
	"context"

	"vaultScope/internal/model"
)

// Storage defines a sink for vault snapshots.
type Storage interface {
	PutSnapshotBatch(ctx context.Context, snapshots []model.VaultSnapshot) error
}

// Multi writes each batch to every sink in order, stopping at the first error.
type Multi []Storage

func (m Multi) PutSnapshotBatch(ctx context.Context, snapshots []model.VaultSnapshot) error {
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.PutSnapshotBatch(ctx, snapshots); err != nil {
			return err
		}
	}
	return nil
}
