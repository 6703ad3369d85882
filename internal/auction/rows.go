package auction

import (
	"time"

	"vaultScope/internal/model"
)

// Row is an auction with per-viewer extras.
type Row struct {
	model.Auction
	MyBids int    `json:"my_bids"`
	Status Status `json:"status"`
}

// Filter selects auctions. Zero values match everything.
type Filter struct {
	Type      model.AuctionType
	SaleAsset string
	Status    Status
}

// Viewer identifies the connected wallet and its proxy.
type Viewer struct {
	Address      string
	ProxyAddress string
}

// Lists groups fetched auctions by type.
type Lists struct {
	Collateral []model.Auction
	Debt       []model.Auction
	Surplus    []model.Auction
}

// Select applies the type, sale asset and status filters. Debt auctions
// always sell KITE and surplus auctions HAI, so the sale asset filter only
// narrows collateral auctions or the combined list.
func Select(lists Lists, filter Filter, now time.Time) []model.Auction {
	var out []model.Auction
	tokenFilter := filter.SaleAsset
	switch filter.Type {
	case model.AuctionCollateral:
		out = append(out, lists.Collateral...)
	case model.AuctionDebt:
		out = append(out, lists.Debt...)
		tokenFilter = ""
	case model.AuctionSurplus:
		out = append(out, lists.Surplus...)
		tokenFilter = ""
	default:
		out = append(out, lists.Collateral...)
		out = append(out, lists.Debt...)
		out = append(out, lists.Surplus...)
	}

	if tokenFilter != "" {
		filtered := out[:0]
		for _, a := range out {
			if TokenSymbol(a.SellToken) == tokenFilter {
				filtered = append(filtered, a)
			}
		}
		out = filtered
	}

	if filter.Status != "" {
		filtered := out[:0]
		for _, a := range out {
			if StatusOf(a, now) == filter.Status {
				filtered = append(filtered, a)
			}
		}
		out = filtered
	}

	return out
}

// WithExtras annotates auctions with the viewer's bid count and status.
// With no viewer address, bid counts are zero and myBidsOnly is ignored.
func WithExtras(auctions []model.Auction, viewer Viewer, myBidsOnly bool, now time.Time) []Row {
	rows := make([]Row, 0, len(auctions))
	for _, a := range auctions {
		row := Row{Auction: a, Status: StatusOf(a, now)}
		if viewer.Address != "" {
			row.MyBids = countMyBids(a, viewer)
			if myBidsOnly && row.MyBids == 0 {
				continue
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func countMyBids(a model.Auction, viewer Viewer) int {
	seen := make(map[string]struct{})
	for _, bid := range a.BiddersList {
		if !equalAddress(bid.Bidder, viewer.Address) && !equalAddress(bid.Bidder, viewer.ProxyAddress) {
			continue
		}
		seen[bid.CreatedAtTransaction] = struct{}{}
	}
	return len(seen)
}
