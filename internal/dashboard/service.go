// Package dashboard answers the read queries behind the vault, auction,
// supply and contracts screens.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"vaultScope/internal/auction"
	"vaultScope/internal/contracts"
	"vaultScope/internal/model"
	"vaultScope/internal/snapshot"
	"vaultScope/internal/vault"
)

var (
	// ErrNotFound is returned when a vault does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable is returned when a backing reader is not configured.
	ErrUnavailable = errors.New("unavailable")
)

// VaultSource reads safes and protocol state.
type VaultSource interface {
	SafesByOwner(ctx context.Context, owner string) ([]model.Safe, error)
	SafeByID(ctx context.Context, safeID string) (*model.Safe, error)
	LiquidationData(ctx context.Context) (*model.LiquidationData, error)
}

// BalanceReader reads wallet balances in token units.
type BalanceReader interface {
	Balances(ctx context.Context, collateralName, owner string) (string, string, error)
}

// SupplyReader reads the HAI total supply in token units.
type SupplyReader interface {
	FormattedTotalSupply(ctx context.Context) (string, error)
}

// Deps are the readers a Service queries. Balances and Supply may be nil.
type Deps struct {
	Vaults   VaultSource
	Auctions auction.Source
	Balances BalanceReader
	Supply   SupplyReader
}

// Config holds static service settings.
type Config struct {
	ChainID      uint64
	Contracts    map[string]string
	AuctionLimit int
}

// Service combines the readers with the vault and auction calculators.
type Service struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger
	now    func() time.Time
}

func New(cfg Config, deps Deps, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AuctionLimit <= 0 {
		cfg.AuctionLimit = 500
	}
	return &Service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Vaults returns the derived state of every vault owned by owner.
func (s *Service) Vaults(ctx context.Context, owner string) ([]model.VaultSnapshot, error) {
	owner = strings.ToLower(strings.TrimSpace(owner))
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	safes, err := s.deps.Vaults.SafesByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	liq, err := s.deps.Vaults.LiquidationData(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]model.VaultSnapshot, 0, len(safes))
	for i := range safes {
		snap, err := snapshot.Build(s.cfg.ChainID, &safes[i], liq, now)
		if err != nil {
			return nil, fmt.Errorf("vault %s: %w", safes[i].ID, err)
		}
		out = append(out, snap)
	}
	return out, nil
}

// StateRequest selects a vault and the pending form input.
type StateRequest struct {
	ID             string          `json:"id,omitempty"`
	Create         bool            `json:"create,omitempty"`
	CollateralName string          `json:"collateral,omitempty"`
	Action         string          `json:"action,omitempty"`
	Form           vault.FormState `json:"form"`
	Wallet         string          `json:"wallet,omitempty"`
	Proxy          string          `json:"proxy,omitempty"`
}

// VaultState derives the full state of a vault, or of a vault being
// created, with the request's form applied.
func (s *Service) VaultState(ctx context.Context, req StateRequest) (vault.VaultState, error) {
	var action vault.Action
	if req.Action != "" {
		var err error
		action, err = vault.ParseAction(req.Action)
		if err != nil {
			return vault.VaultState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := req.Form.Validate(); err != nil {
		return vault.VaultState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var safe *model.Safe
	if !req.Create {
		if strings.TrimSpace(req.ID) == "" {
			return vault.VaultState{}, fmt.Errorf("%w: vault id is required", ErrInvalidInput)
		}
		var err error
		safe, err = s.deps.Vaults.SafeByID(ctx, req.ID)
		if err != nil {
			return vault.VaultState{}, err
		}
		if safe == nil {
			return vault.VaultState{}, fmt.Errorf("vault %s: %w", req.ID, ErrNotFound)
		}
	}

	liq, err := s.deps.Vaults.LiquidationData(ctx)
	if err != nil {
		return vault.VaultState{}, err
	}

	provider := vault.NewProvider(s.logger)
	provider.SetActiveVault(req.Create, req.CollateralName, safe)
	if req.Action != "" {
		provider.SetAction(action)
	}
	provider.UpdateForm(req.Form.Update())

	collateralName := req.CollateralName
	if collateralName == "" && safe != nil {
		collateralName = safe.CollateralName
	}
	if collateralName == "" {
		collateralName = vault.DefaultCollateralName
	}

	env := vault.Env{
		Liquidation:   liq,
		WalletAddress: req.Wallet,
		ProxyAddress:  req.Proxy,
	}
	if req.Wallet != "" && s.deps.Balances != nil {
		env.CollateralBalance, env.HAIBalance, err = s.deps.Balances.Balances(ctx, collateralName, req.Wallet)
		if err != nil {
			s.logger.Warn("balance read failed", zap.String("wallet", req.Wallet), zap.Error(err))
			env.CollateralBalance, env.HAIBalance = "", ""
		}
	}

	return provider.State(env)
}

// AuctionQuery filters and sorts the auction list.
type AuctionQuery struct {
	Type       string
	Asset      string
	Status     string
	Sort       string
	Dir        string
	Wallet     string
	Proxy      string
	MyBidsOnly bool
}

// Auctions returns the filtered, annotated and sorted auction rows.
func (s *Service) Auctions(ctx context.Context, q AuctionQuery) ([]auction.Row, error) {
	auctionType, err := auction.ParseType(q.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	status, err := auction.ParseStatus(q.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	key, err := auction.ParseSortKey(q.Sort)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	dir, err := auction.ParseDirection(q.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lists, err := auction.Load(ctx, s.deps.Auctions, auctionType, s.cfg.AuctionLimit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	selected := auction.Select(lists, auction.Filter{
		Type:      auctionType,
		SaleAsset: strings.ToUpper(strings.TrimSpace(q.Asset)),
		Status:    status,
	}, now)
	rows := auction.WithExtras(selected, auction.Viewer{Address: q.Wallet, ProxyAddress: q.Proxy}, q.MyBidsOnly, now)
	return auction.Sort(rows, auction.Sorting{Key: key, Dir: dir}), nil
}

// Supply returns the HAI total supply in token units.
func (s *Service) Supply(ctx context.Context) (string, error) {
	if s.deps.Supply == nil {
		return "", fmt.Errorf("supply: %w", ErrUnavailable)
	}
	return s.deps.Supply.FormattedTotalSupply(ctx)
}

// Contracts returns the configured contract addresses.
func (s *Service) Contracts() []contracts.Contract {
	return contracts.List(s.cfg.Contracts)
}
