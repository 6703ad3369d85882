package auction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vaultScope/internal/model"
)

// Status is the lifecycle stage of an auction.
type Status string

const (
	StatusLive       Status = "Live"
	StatusSettling   Status = "Settling"
	StatusRestarting Status = "Restarting"
	StatusCompleted  Status = "Completed"
)

// StatusOf returns the auction status at now. Past the deadline an auction
// with bids waits for settlement and one without restarts.
func StatusOf(auction model.Auction, now time.Time) Status {
	if auction.IsClaimed {
		return StatusCompleted
	}
	deadline, err := strconv.ParseInt(auction.AuctionDeadline, 10, 64)
	if err != nil || deadline == 0 {
		return StatusLive
	}
	if now.Unix() < deadline {
		return StatusLive
	}
	if len(auction.BiddersList) > 0 {
		return StatusSettling
	}
	return StatusRestarting
}

// ParseStatus matches a status name case-insensitively; empty means any.
func ParseStatus(input string) (Status, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	for _, s := range []Status{StatusLive, StatusSettling, StatusRestarting, StatusCompleted} {
		if strings.EqualFold(string(s), input) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown auction status: %s", input)
}
