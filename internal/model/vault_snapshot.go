package model

import "time"

// VaultSnapshot stores the derived state of a safe at a point in time.
type VaultSnapshot struct {
	ChainID          uint64    `json:"chain_id"`
	SafeID           string    `json:"safe_id"`
	Owner            string    `json:"owner"`
	CollateralName   string    `json:"collateral_name"`
	Collateral       string    `json:"collateral"`
	Debt             string    `json:"debt"`
	CollateralRatio  string    `json:"collateral_ratio"`
	LiquidationPrice string    `json:"liquidation_price"`
	RiskStatus       string    `json:"risk_status"`
	IsSafe           bool      `json:"is_safe"`
	CapturedAt       time.Time `json:"captured_at"`
}
