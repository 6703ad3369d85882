package model

// AuctionType is the kind of english auction.
type AuctionType string

const (
	AuctionCollateral AuctionType = "COLLATERAL"
	AuctionDebt       AuctionType = "DEBT"
	AuctionSurplus    AuctionType = "SURPLUS"
)

// AuctionBid is a single bid placed in an auction.
type AuctionBid struct {
	Bidder               string `json:"bidder"`
	BuyAmount            string `json:"buy_amount"`
	SellAmount           string `json:"sell_amount"`
	CreatedAt            string `json:"created_at"`
	CreatedAtTransaction string `json:"created_at_transaction"`
}

// Auction is an auction as reported by the subgraph.
type Auction struct {
	AuctionID          string       `json:"auction_id"`
	EnglishAuctionType AuctionType  `json:"english_auction_type"`
	SellToken          string       `json:"sell_token"`
	BuyToken           string       `json:"buy_token"`
	SellInitialAmount  string       `json:"sell_initial_amount"`
	BuyInitialAmount   string       `json:"buy_initial_amount"`
	StartedBy          string       `json:"started_by"`
	CreatedAt          string       `json:"created_at"`
	AuctionDeadline    string       `json:"auction_deadline"`
	IsClaimed          bool         `json:"is_claimed"`
	Winner             string       `json:"winner,omitempty"`
	BiddersList        []AuctionBid `json:"bidders_list"`
}
