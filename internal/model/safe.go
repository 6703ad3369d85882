package model

// Safe is a collateralized debt position as reported by the subgraph.
// Amounts are decimal strings in token units.
type Safe struct {
	ID                          string `json:"id"`
	Owner                       string `json:"owner,omitempty"`
	SafeHandler                 string `json:"safe_handler"`
	Date                        string `json:"date"`
	RiskState                   int    `json:"risk_state"`
	CollateralName              string `json:"collateral_name"`
	CollateralType              string `json:"collateral_type"`
	Collateral                  string `json:"collateral"`
	Debt                        string `json:"debt"`
	TotalDebt                   string `json:"total_debt"`
	AvailableDebt               string `json:"available_debt"`
	AccumulatedRate             string `json:"accumulated_rate"`
	CollateralRatio             string `json:"collateral_ratio"`
	LiquidationPrice            string `json:"liquidation_price"`
	LiquidationCRatio           string `json:"liquidation_c_ratio"`
	LiquidationPenalty          string `json:"liquidation_penalty"`
	InternalCollateralBalance   string `json:"internal_collateral_balance"`
	TotalAnnualizedStabilityFee string `json:"total_annualized_stability_fee"`
	CurrentRedemptionPrice      string `json:"current_redemption_price"`
	CurrentRedemptionRate       string `json:"current_redemption_rate"`
	CurrentLiquidationPrice     string `json:"current_liquidation_price"`
}

// DebtAmount returns the total debt when known, falling back to normalized debt.
func (s Safe) DebtAmount() string {
	if s.TotalDebt != "" {
		return s.TotalDebt
	}
	return s.Debt
}
