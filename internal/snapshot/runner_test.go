package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"vaultScope/internal/model"
)

type fakeSource struct {
	safes       []model.Safe
	liquidation *model.LiquidationData
	pageErrs    int
	cursors     []string
}

func (f *fakeSource) SafesPage(ctx context.Context, first int, lastID string) ([]model.Safe, error) {
	if f.pageErrs > 0 {
		f.pageErrs--
		return nil, errors.New("subgraph unavailable")
	}
	f.cursors = append(f.cursors, lastID)
	last := 0
	if lastID != "" {
		last, _ = strconv.Atoi(lastID)
	}
	var out []model.Safe
	for _, safe := range f.safes {
		id, _ := strconv.Atoi(safe.ID)
		if id <= last {
			continue
		}
		out = append(out, safe)
		if len(out) == first {
			break
		}
	}
	return out, nil
}

func (f *fakeSource) LiquidationData(ctx context.Context) (*model.LiquidationData, error) {
	return f.liquidation, nil
}

type memorySink struct {
	snapshots []model.VaultSnapshot
	failAt    int
	calls     int
}

func (m *memorySink) PutSnapshotBatch(ctx context.Context, snapshots []model.VaultSnapshot) error {
	m.calls++
	if m.failAt > 0 && m.calls == m.failAt {
		return errors.New("write failed")
	}
	m.snapshots = append(m.snapshots, snapshots...)
	return nil
}

func testLiquidation() *model.LiquidationData {
	return &model.LiquidationData{
		CurrentRedemptionPrice: "1.05",
		CollateralLiquidationData: map[string]model.CollateralLiquidationData{
			"WETH": {
				CurrentPrice: model.CollateralPrice{
					Value:            "2000",
					LiquidationPrice: "1587.3",
					SafetyPrice:      "1410.9",
				},
				LiquidationCRatio:  "1.2",
				LiquidationPenalty: "1.1",
				SafetyCRatio:       "1.35",
			},
		},
	}
}

func testSafes(n int) []model.Safe {
	safes := make([]model.Safe, 0, n)
	for i := 1; i <= n; i++ {
		safes = append(safes, model.Safe{
			ID:             strconv.Itoa(i),
			Owner:          "0xowner",
			CollateralName: "WETH",
			Collateral:     "10",
			Debt:           "10000",
			TotalDebt:      "10000",
		})
	}
	return safes
}

func newTestRunner(source Source, sink *memorySink, state StateStore, now time.Time) *Runner {
	runner := NewRunner(RunConfig{
		ChainID:      10,
		PageSize:     2,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}, source, sink, state, nil)
	runner.now = func() time.Time { return now }
	return runner
}

func TestBuild(t *testing.T) {
	safe := testSafes(1)[0]
	captured := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	snap, err := Build(10, &safe, testLiquidation(), captured)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if snap.CollateralRatio != "190.48" {
		t.Fatalf("collateral ratio = %s, want 190.48", snap.CollateralRatio)
	}
	if snap.LiquidationPrice != "1260" {
		t.Fatalf("liquidation price = %s, want 1260", snap.LiquidationPrice)
	}
	if snap.RiskStatus != "Unsafe" {
		t.Fatalf("risk status = %s, want Unsafe", snap.RiskStatus)
	}
	if !snap.IsSafe {
		t.Fatalf("expected safe vault")
	}
	if snap.ChainID != 10 || snap.SafeID != "1" || !snap.CapturedAt.Equal(captured) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRunPagesAllSafes(t *testing.T) {
	source := &fakeSource{safes: testSafes(5), liquidation: testLiquidation(), pageErrs: 1}
	sink := &memorySink{}
	state := &FileStateStore{Path: filepath.Join(t.TempDir(), "state.json")}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := newTestRunner(source, sink, state, now).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Complete || result.Pages != 3 || result.Snapshots != 5 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(sink.snapshots) != 5 {
		t.Fatalf("expected 5 snapshots, got %d", len(sink.snapshots))
	}
	for _, snap := range sink.snapshots {
		if !snap.CapturedAt.Equal(now) {
			t.Fatalf("unexpected capture time %s", snap.CapturedAt)
		}
	}

	cp, ok, err := state.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("load state: ok=%v err=%v", ok, err)
	}
	if cp.Cursor != "" {
		t.Fatalf("expected cursor reset after completion, got %q", cp.Cursor)
	}
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	source := &fakeSource{safes: testSafes(5), liquidation: testLiquidation()}
	state := &FileStateStore{Path: filepath.Join(t.TempDir(), "state.json")}
	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	failing := &memorySink{failAt: 2}
	if _, err := newTestRunner(source, failing, state, first).Run(context.Background()); err == nil {
		t.Fatalf("expected store error")
	}
	cp, ok, err := state.Load(context.Background())
	if err != nil || !ok || cp.Cursor != "2" {
		t.Fatalf("unexpected checkpoint %+v ok=%v err=%v", cp, ok, err)
	}

	sink := &memorySink{}
	later := first.Add(time.Hour)
	result, err := newTestRunner(source, sink, state, later).Run(context.Background())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if result.Snapshots != 3 {
		t.Fatalf("expected 3 snapshots after resume, got %d", result.Snapshots)
	}
	if sink.snapshots[0].SafeID != "3" {
		t.Fatalf("expected resume at safe 3, got %s", sink.snapshots[0].SafeID)
	}
	if !result.CapturedAt.Equal(first) || !sink.snapshots[0].CapturedAt.Equal(first) {
		t.Fatalf("expected resumed run to keep capture time %s, got %s", first, result.CapturedAt)
	}
}

func TestRunStopsAtPageLimit(t *testing.T) {
	source := &fakeSource{safes: testSafes(5), liquidation: testLiquidation()}
	sink := &memorySink{}
	runner := newTestRunner(source, sink, nil, time.Now())
	runner.cfg.MaxPages = 1

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Complete || result.Pages != 1 || len(sink.snapshots) != 2 {
		t.Fatalf("unexpected result %+v with %d snapshots", result, len(sink.snapshots))
	}
}

func TestRunValidatesConfig(t *testing.T) {
	runner := NewRunner(RunConfig{}, &fakeSource{}, &memorySink{}, nil, nil)
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatalf("expected page size error")
	}
}

func TestFileStateStoreMissingFile(t *testing.T) {
	state := &FileStateStore{Path: filepath.Join(t.TempDir(), "missing.json")}
	_, ok, err := state.Load(context.Background())
	if err != nil || ok {
		t.Fatalf("expected no state, got ok=%v err=%v", ok, err)
	}
}
