package subgraph

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"vaultScope/internal/model"
)

const collateralTypeFields = `
	id
	accumulatedRate
	debtFloor
	debtCeiling
	debtAmount
	liquidationCRatio
	liquidationPenalty
	safetyCRatio
	totalAnnualizedStabilityFee
	currentPrice {
		value
		liquidationPrice
		safetyPrice
	}
`

const safeFields = `
	id
	safeId
	safeHandler
	createdAt
	collateral
	debt
	owner {
		address
	}
	collateralType {` + collateralTypeFields + `}
`

const safesQuery = `query Safes($first: Int!, $lastId: BigInt!) {
	safes(first: $first, orderBy: safeId, orderDirection: asc, where: {safeId_gt: $lastId}) {` + safeFields + `}
}`

const safesByOwnerQuery = `query SafesByOwner($owner: String!) {
	safes(where: {owner: $owner}, orderBy: safeId) {` + safeFields + `}
}`

const safeByIDQuery = `query SafeByID($safeId: String!) {
	safes(where: {safeId: $safeId}, first: 1) {` + safeFields + `}
}`

const liquidationQuery = `query Liquidation {
	systemStates(first: 1) {
		currentRedemptionPrice {
			value
		}
		currentRedemptionRate {
			annualizedRate
		}
		globalDebt
		globalDebtCeiling
		perSafeDebtCeiling
	}
	collateralTypes {` + collateralTypeFields + `}
}`

const auctionsQuery = `query Auctions($type: String!, $first: Int!) {
	englishAuctions(where: {englishAuctionType: $type}, first: $first, orderBy: auctionId, orderDirection: desc) {
		auctionId
		englishAuctionType
		sellToken
		buyToken
		sellInitialAmount
		buyInitialAmount
		startedBy
		createdAt
		auctionDeadline
		isClaimed
		winner
		englishAuctionBids {
			bidder
			buyAmount
			sellAmount
			createdAt
			createdAtTransaction
		}
	}
}`

type rawPrice struct {
	Value            string `json:"value"`
	LiquidationPrice string `json:"liquidationPrice"`
	SafetyPrice      string `json:"safetyPrice"`
}

type rawCollateralType struct {
	ID                          string    `json:"id"`
	AccumulatedRate             string    `json:"accumulatedRate"`
	DebtFloor                   string    `json:"debtFloor"`
	DebtCeiling                 string    `json:"debtCeiling"`
	DebtAmount                  string    `json:"debtAmount"`
	LiquidationCRatio           string    `json:"liquidationCRatio"`
	LiquidationPenalty          string    `json:"liquidationPenalty"`
	SafetyCRatio                string    `json:"safetyCRatio"`
	TotalAnnualizedStabilityFee string    `json:"totalAnnualizedStabilityFee"`
	CurrentPrice                *rawPrice `json:"currentPrice"`
}

type rawSafe struct {
	ID             string `json:"id"`
	SafeID         string `json:"safeId"`
	SafeHandler    string `json:"safeHandler"`
	CreatedAt      string `json:"createdAt"`
	Collateral     string `json:"collateral"`
	Debt           string `json:"debt"`
	Owner          *struct {
		Address string `json:"address"`
	} `json:"owner"`
	CollateralType rawCollateralType `json:"collateralType"`
}

type rawSystemState struct {
	CurrentRedemptionPrice *struct {
		Value string `json:"value"`
	} `json:"currentRedemptionPrice"`
	CurrentRedemptionRate *struct {
		AnnualizedRate string `json:"annualizedRate"`
	} `json:"currentRedemptionRate"`
	GlobalDebt         string `json:"globalDebt"`
	GlobalDebtCeiling  string `json:"globalDebtCeiling"`
	PerSafeDebtCeiling string `json:"perSafeDebtCeiling"`
}

type rawBid struct {
	Bidder               string `json:"bidder"`
	BuyAmount            string `json:"buyAmount"`
	SellAmount           string `json:"sellAmount"`
	CreatedAt            string `json:"createdAt"`
	CreatedAtTransaction string `json:"createdAtTransaction"`
}

type rawAuction struct {
	AuctionID          string   `json:"auctionId"`
	EnglishAuctionType string   `json:"englishAuctionType"`
	SellToken          string   `json:"sellToken"`
	BuyToken           string   `json:"buyToken"`
	SellInitialAmount  string   `json:"sellInitialAmount"`
	BuyInitialAmount   string   `json:"buyInitialAmount"`
	StartedBy          string   `json:"startedBy"`
	CreatedAt          string   `json:"createdAt"`
	AuctionDeadline    string   `json:"auctionDeadline"`
	IsClaimed          bool     `json:"isClaimed"`
	Winner             string   `json:"winner"`
	Bids               []rawBid `json:"englishAuctionBids"`
}

type safesData struct {
	Safes []rawSafe `json:"safes"`
}

type liquidationData struct {
	SystemStates    []rawSystemState    `json:"systemStates"`
	CollateralTypes []rawCollateralType `json:"collateralTypes"`
}

type auctionsData struct {
	Auctions []rawAuction `json:"englishAuctions"`
}

// SafesPage returns up to first safes with a safe id greater than lastID,
// ordered by safe id. An empty lastID starts from the beginning.
func (c *Client) SafesPage(ctx context.Context, first int, lastID string) ([]model.Safe, error) {
	if lastID == "" {
		lastID = "0"
	}
	data, err := Query[safesData](ctx, c, safesQuery, map[string]interface{}{
		"first":  first,
		"lastId": lastID,
	})
	if err != nil {
		return nil, fmt.Errorf("query safes: %w", err)
	}
	return convertSafes(data.Safes)
}

// SafesByOwner returns every safe owned by owner.
func (c *Client) SafesByOwner(ctx context.Context, owner string) ([]model.Safe, error) {
	data, err := Query[safesData](ctx, c, safesByOwnerQuery, map[string]interface{}{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("query safes by owner: %w", err)
	}
	return convertSafes(data.Safes)
}

// SafeByID returns the safe with the given protocol safe id.
func (c *Client) SafeByID(ctx context.Context, safeID string) (*model.Safe, error) {
	data, err := Query[safesData](ctx, c, safeByIDQuery, map[string]interface{}{"safeId": safeID})
	if err != nil {
		return nil, fmt.Errorf("query safe %s: %w", safeID, err)
	}
	if len(data.Safes) == 0 {
		return nil, nil
	}
	safes, err := convertSafes(data.Safes[:1])
	if err != nil {
		return nil, err
	}
	return &safes[0], nil
}

// LiquidationData returns the protocol state and every collateral's parameters.
func (c *Client) LiquidationData(ctx context.Context) (*model.LiquidationData, error) {
	data, err := Query[liquidationData](ctx, c, liquidationQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("query liquidation data: %w", err)
	}

	out := &model.LiquidationData{
		CollateralLiquidationData: make(map[string]model.CollateralLiquidationData, len(data.CollateralTypes)),
	}
	if len(data.SystemStates) > 0 {
		state := data.SystemStates[0]
		if state.CurrentRedemptionPrice != nil {
			out.CurrentRedemptionPrice = state.CurrentRedemptionPrice.Value
		}
		if state.CurrentRedemptionRate != nil {
			out.CurrentRedemptionRate = state.CurrentRedemptionRate.AnnualizedRate
		}
		out.GlobalDebt = state.GlobalDebt
		out.GlobalDebtCeiling = state.GlobalDebtCeiling
		out.PerSafeDebtCeiling = state.PerSafeDebtCeiling
	}
	for _, ct := range data.CollateralTypes {
		out.CollateralLiquidationData[ct.ID] = convertCollateralType(ct)
	}
	return out, nil
}

// Auctions returns up to first auctions of the given type, newest first.
func (c *Client) Auctions(ctx context.Context, auctionType model.AuctionType, first int) ([]model.Auction, error) {
	data, err := Query[auctionsData](ctx, c, auctionsQuery, map[string]interface{}{
		"type":  string(auctionType),
		"first": first,
	})
	if err != nil {
		return nil, fmt.Errorf("query %s auctions: %w", auctionType, err)
	}

	out := make([]model.Auction, 0, len(data.Auctions))
	for _, a := range data.Auctions {
		bids := make([]model.AuctionBid, 0, len(a.Bids))
		for _, b := range a.Bids {
			bids = append(bids, model.AuctionBid(b))
		}
		out = append(out, model.Auction{
			AuctionID:          a.AuctionID,
			EnglishAuctionType: model.AuctionType(a.EnglishAuctionType),
			SellToken:          a.SellToken,
			BuyToken:           a.BuyToken,
			SellInitialAmount:  a.SellInitialAmount,
			BuyInitialAmount:   a.BuyInitialAmount,
			StartedBy:          a.StartedBy,
			CreatedAt:          a.CreatedAt,
			AuctionDeadline:    a.AuctionDeadline,
			IsClaimed:          a.IsClaimed,
			Winner:             a.Winner,
			BiddersList:        bids,
		})
	}
	return out, nil
}

func convertCollateralType(ct rawCollateralType) model.CollateralLiquidationData {
	out := model.CollateralLiquidationData{
		AccumulatedRate:             ct.AccumulatedRate,
		DebtFloor:                   ct.DebtFloor,
		DebtCeiling:                 ct.DebtCeiling,
		TotalDebt:                   ct.DebtAmount,
		LiquidationCRatio:           ct.LiquidationCRatio,
		LiquidationPenalty:          ct.LiquidationPenalty,
		SafetyCRatio:                ct.SafetyCRatio,
		TotalAnnualizedStabilityFee: ct.TotalAnnualizedStabilityFee,
	}
	if ct.CurrentPrice != nil {
		out.CurrentPrice = model.CollateralPrice(*ct.CurrentPrice)
	}
	return out
}

// convertSafes maps raw safes; total debt is normalized debt times the
// collateral's accumulated rate.
func convertSafes(raw []rawSafe) ([]model.Safe, error) {
	out := make([]model.Safe, 0, len(raw))
	for _, r := range raw {
		totalDebt := r.Debt
		if r.CollateralType.AccumulatedRate != "" && r.Debt != "" {
			debt, err := decimal.NewFromString(r.Debt)
			if err != nil {
				return nil, fmt.Errorf("safe %s debt: %w", r.SafeID, err)
			}
			rate, err := decimal.NewFromString(r.CollateralType.AccumulatedRate)
			if err != nil {
				return nil, fmt.Errorf("safe %s accumulated rate: %w", r.SafeID, err)
			}
			totalDebt = debt.Mul(rate).String()
		}

		owner := ""
		if r.Owner != nil {
			owner = r.Owner.Address
		}
		id := r.SafeID
		if id == "" {
			id = r.ID
		}

		out = append(out, model.Safe{
			ID:                          id,
			Owner:                       owner,
			SafeHandler:                 r.SafeHandler,
			Date:                        r.CreatedAt,
			CollateralName:              r.CollateralType.ID,
			CollateralType:              r.CollateralType.ID,
			Collateral:                  r.Collateral,
			Debt:                        r.Debt,
			TotalDebt:                   totalDebt,
			AccumulatedRate:             r.CollateralType.AccumulatedRate,
			LiquidationCRatio:           r.CollateralType.LiquidationCRatio,
			LiquidationPenalty:          r.CollateralType.LiquidationPenalty,
			InternalCollateralBalance:   r.Collateral,
			TotalAnnualizedStabilityFee: r.CollateralType.TotalAnnualizedStabilityFee,
		})
	}
	return out, nil
}
