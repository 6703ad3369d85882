package config

import (
	"time"

	"github.com/spf13/pflag"
)

// SnapshotConfig holds configuration for the snapshot command.
type SnapshotConfig struct {
	Config
	ChainID   uint64
	Out       string
	PGDSN     string
	StateFile string
	StateName string
	PageSize  int
	MaxPages  int
}

// LoadSnapshot merges config file, environment variables, and flags into SnapshotConfig.
func LoadSnapshot(cfgFile string, flags *pflag.FlagSet) (SnapshotConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"chain-id":      uint64(10),
		"out":           "./data/snapshots.jsonl",
		"state-name":    "snapshot",
		"page-size":     500,
		"retry-backoff": time.Second,
	})
	if err != nil {
		return SnapshotConfig{}, err
	}

	return SnapshotConfig{
		Config:    common(v),
		ChainID:   v.GetUint64("chain-id"),
		Out:       v.GetString("out"),
		PGDSN:     v.GetString("pg-dsn"),
		StateFile: v.GetString("state-file"),
		StateName: v.GetString("state-name"),
		PageSize:  v.GetInt("page-size"),
		MaxPages:  v.GetInt("max-pages"),
	}, nil
}
