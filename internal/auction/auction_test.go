package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"vaultScope/internal/model"
)

var now = time.Unix(1_700_000_000, 0)

const (
	wallet = "0xAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAa"
	proxy  = "0xBbBbBbBbBbBbBbBbBbBbBbBbBbBbBbBbBbBbBbBb"
)

func sampleLists() Lists {
	return Lists{
		Collateral: []model.Auction{
			{AuctionID: "1", EnglishAuctionType: model.AuctionCollateral, SellToken: "WETH", BuyToken: "COIN", AuctionDeadline: "1700000100",
				BiddersList: []model.AuctionBid{
					{Bidder: wallet, CreatedAtTransaction: "0x01"},
					{Bidder: proxy, CreatedAtTransaction: "0x02"},
					{Bidder: wallet, CreatedAtTransaction: "0x02"},
				}},
			{AuctionID: "12", EnglishAuctionType: model.AuctionCollateral, SellToken: "OP", BuyToken: "COIN", AuctionDeadline: "1699999000"},
		},
		Debt: []model.Auction{
			{AuctionID: "3", EnglishAuctionType: model.AuctionDebt, SellToken: "PROTOCOL_TOKEN", BuyToken: "COIN", AuctionDeadline: "1699990000",
				BiddersList: []model.AuctionBid{{Bidder: "0x9999999999999999999999999999999999999999", CreatedAtTransaction: "0x03"}}},
		},
		Surplus: []model.Auction{
			{AuctionID: "4", EnglishAuctionType: model.AuctionSurplus, SellToken: "COIN", BuyToken: "PROTOCOL_TOKEN", AuctionDeadline: "1700500000", IsClaimed: true},
		},
	}
}

func TestStatusOf(t *testing.T) {
	lists := sampleLists()
	cases := []struct {
		auction model.Auction
		want    Status
	}{
		{lists.Collateral[0], StatusLive},
		{lists.Collateral[1], StatusRestarting},
		{lists.Debt[0], StatusSettling},
		{lists.Surplus[0], StatusCompleted},
		{model.Auction{AuctionDeadline: "bad"}, StatusLive},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.auction, now); got != tc.want {
			t.Fatalf("status of %s = %s, want %s", tc.auction.AuctionID, got, tc.want)
		}
	}
}

func TestSelect(t *testing.T) {
	lists := sampleLists()

	if got := Select(lists, Filter{}, now); len(got) != 4 {
		t.Fatalf("all auctions = %d", len(got))
	}
	if got := Select(lists, Filter{SaleAsset: "WETH"}, now); len(got) != 1 || got[0].AuctionID != "1" {
		t.Fatalf("WETH filter = %+v", got)
	}
	if got := Select(lists, Filter{SaleAsset: "KITE"}, now); len(got) != 1 || got[0].AuctionID != "3" {
		t.Fatalf("KITE filter should match mapped protocol token: %+v", got)
	}
	if got := Select(lists, Filter{Type: model.AuctionDebt, SaleAsset: "WETH"}, now); len(got) != 1 {
		t.Fatalf("debt auctions ignore sale asset filter: %+v", got)
	}
	if got := Select(lists, Filter{Status: StatusLive}, now); len(got) != 1 || got[0].AuctionID != "1" {
		t.Fatalf("live filter = %+v", got)
	}
	if got := Select(lists, Filter{Type: model.AuctionCollateral}, now); len(got) != 2 {
		t.Fatalf("collateral filter = %+v", got)
	}
}

func TestWithExtrasCountsDistinctTransactions(t *testing.T) {
	all := Select(sampleLists(), Filter{}, now)

	rows := WithExtras(all, Viewer{Address: wallet, ProxyAddress: proxy}, false, now)
	if len(rows) != 4 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].MyBids != 2 {
		t.Fatalf("my bids = %d, want 2", rows[0].MyBids)
	}

	mine := WithExtras(all, Viewer{Address: wallet, ProxyAddress: proxy}, true, now)
	if len(mine) != 1 || mine[0].AuctionID != "1" {
		t.Fatalf("my bids only = %+v", mine)
	}

	anonymous := WithExtras(all, Viewer{}, true, now)
	if len(anonymous) != 4 {
		t.Fatalf("filter ignored without wallet, got %d", len(anonymous))
	}
}

func TestSort(t *testing.T) {
	rows := WithExtras(Select(sampleLists(), Filter{}, now), Viewer{Address: wallet}, false, now)

	byTime := Sort(rows, Sorting{})
	if byTime[0].AuctionID != "4" || byTime[len(byTime)-1].AuctionID != "3" {
		t.Fatalf("default sort = %v", ids(byTime))
	}

	byID := Sort(rows, Sorting{Key: SortAuction, Dir: Asc})
	if got := ids(byID); got != "1,3,4,12" {
		t.Fatalf("id sort = %s", got)
	}

	bySale := Sort(rows, Sorting{Key: SortForSale, Dir: Asc})
	if bySale[0].SellToken != "COIN" {
		t.Fatalf("sale sort = %v", ids(bySale))
	}

	byBids := Sort(rows, Sorting{Key: SortMyBids, Dir: Desc})
	if byBids[0].AuctionID != "1" {
		t.Fatalf("bids sort = %v", ids(byBids))
	}

	if rows[0].AuctionID != "1" {
		t.Fatalf("sort must not modify input")
	}
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{"": SortTimeLeft, "time-left": SortTimeLeft, "my_bids": SortMyBids, "status": SortStatus} {
		got, err := ParseSortKey(in)
		if err != nil || got != want {
			t.Fatalf("ParseSortKey(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseSortKey("price"); err == nil {
		t.Fatalf("expected error")
	}
}

func ids(rows []Row) string {
	out := ""
	for i, r := range rows {
		if i > 0 {
			out += ","
		}
		out += r.AuctionID
	}
	return out
}

type fakeSource struct {
	lists Lists
	calls []model.AuctionType
}

func (f *fakeSource) Auctions(ctx context.Context, auctionType model.AuctionType, first int) ([]model.Auction, error) {
	f.calls = append(f.calls, auctionType)
	switch auctionType {
	case model.AuctionCollateral:
		return f.lists.Collateral, nil
	case model.AuctionDebt:
		return f.lists.Debt, nil
	case model.AuctionSurplus:
		return f.lists.Surplus, nil
	}
	return nil, errors.New("unexpected type")
}

func TestLoad(t *testing.T) {
	src := &fakeSource{lists: sampleLists()}
	lists, err := Load(context.Background(), src, "", 100)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(src.calls) != 3 || len(lists.Collateral) != 2 || len(lists.Debt) != 1 || len(lists.Surplus) != 1 {
		t.Fatalf("unexpected lists %+v calls %v", lists, src.calls)
	}

	src = &fakeSource{lists: sampleLists()}
	lists, err = Load(context.Background(), src, model.AuctionDebt, 100)
	if err != nil {
		t.Fatalf("load debt: %v", err)
	}
	if len(src.calls) != 1 || len(lists.Debt) != 1 || lists.Collateral != nil {
		t.Fatalf("expected only debt auctions, got %+v", lists)
	}
}

func TestParsers(t *testing.T) {
	if got, err := ParseType("surplus"); err != nil || got != model.AuctionSurplus {
		t.Fatalf("ParseType = %s, %v", got, err)
	}
	if _, err := ParseType("dutch"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if got, err := ParseStatus("settling"); err != nil || got != StatusSettling {
		t.Fatalf("ParseStatus = %s, %v", got, err)
	}
	if got, err := ParseStatus(""); err != nil || got != "" {
		t.Fatalf("ParseStatus empty = %s, %v", got, err)
	}
	if got, err := ParseDirection("ASC"); err != nil || got != Asc {
		t.Fatalf("ParseDirection = %s, %v", got, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}
