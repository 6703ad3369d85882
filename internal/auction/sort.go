package auction

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortKey is a sortable table column.
type SortKey string

const (
	SortAuction     SortKey = "Auction"
	SortAuctionType SortKey = "Auction Type"
	SortForSale     SortKey = "For Sale"
	SortBuyWith     SortKey = "Buy With"
	SortTimeLeft    SortKey = "Time Left"
	SortMyBids      SortKey = "My Bids"
	SortStatus      SortKey = "Status"
)

// Direction is ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sorting is the active column and direction. The zero value sorts by time left, descending.
type Sorting struct {
	Key SortKey
	Dir Direction
}

var sortKeys = []SortKey{SortAuction, SortAuctionType, SortForSale, SortBuyWith, SortTimeLeft, SortMyBids, SortStatus}

// ParseSortKey matches a column label case-insensitively; dashes and
// underscores stand in for spaces.
func ParseSortKey(input string) (SortKey, error) {
	if input == "" {
		return SortTimeLeft, nil
	}
	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(input)
	for _, key := range sortKeys {
		if strings.EqualFold(string(key), normalized) {
			return key, nil
		}
	}
	return "", fmt.Errorf("unknown sort key: %s", input)
}

// ParseDirection parses "asc" or "desc"; empty means the default.
func ParseDirection(input string) (Direction, error) {
	switch dir := Direction(strings.ToLower(strings.TrimSpace(input))); dir {
	case "", Asc, Desc:
		return dir, nil
	default:
		return "", fmt.Errorf("unknown sort direction: %s", input)
	}
}

// Sort returns a sorted copy of rows. Sorting is stable.
func Sort(rows []Row, sorting Sorting) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	dir := sorting.Dir
	if dir == "" {
		dir = Desc
	}

	var less func(a, b Row) bool
	switch sorting.Key {
	case SortAuction:
		less = func(a, b Row) bool { return parseInt(a.AuctionID) < parseInt(b.AuctionID) }
	case SortAuctionType:
		less = func(a, b Row) bool { return a.EnglishAuctionType < b.EnglishAuctionType }
	case SortForSale:
		less = func(a, b Row) bool { return a.SellToken < b.SellToken }
	case SortBuyWith:
		less = func(a, b Row) bool { return a.BuyToken < b.BuyToken }
	case SortMyBids:
		less = func(a, b Row) bool { return a.MyBids < b.MyBids }
	case SortStatus:
		less = func(a, b Row) bool { return a.Status < b.Status }
	default:
		less = func(a, b Row) bool { return parseInt(a.AuctionDeadline) < parseInt(b.AuctionDeadline) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func parseInt(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
