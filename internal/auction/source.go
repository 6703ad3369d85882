package auction

import (
	"context"
	"fmt"
	"strings"

	"vaultScope/internal/model"
)

// Source fetches auctions of one type.
type Source interface {
	Auctions(ctx context.Context, auctionType model.AuctionType, first int) ([]model.Auction, error)
}

// Load fetches the lists needed for auctionType, or all three when it is empty.
func Load(ctx context.Context, src Source, auctionType model.AuctionType, limit int) (Lists, error) {
	var lists Lists
	targets := []struct {
		kind model.AuctionType
		dst  *[]model.Auction
	}{
		{model.AuctionCollateral, &lists.Collateral},
		{model.AuctionDebt, &lists.Debt},
		{model.AuctionSurplus, &lists.Surplus},
	}
	for _, target := range targets {
		if auctionType != "" && auctionType != target.kind {
			continue
		}
		auctions, err := src.Auctions(ctx, target.kind, limit)
		if err != nil {
			return Lists{}, fmt.Errorf("load %s auctions: %w", target.kind, err)
		}
		*target.dst = auctions
	}
	return lists, nil
}

// ParseType parses an auction type name; empty means all types.
func ParseType(input string) (model.AuctionType, error) {
	switch t := model.AuctionType(strings.ToUpper(strings.TrimSpace(input))); t {
	case "", model.AuctionCollateral, model.AuctionDebt, model.AuctionSurplus:
		return t, nil
	default:
		return "", fmt.Errorf("unknown auction type: %s", input)
	}
}
