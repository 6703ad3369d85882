package model

// CollateralPrice holds the oracle prices of a collateral type.
type CollateralPrice struct {
	Value            string `json:"value"`
	LiquidationPrice string `json:"liquidation_price"`
	SafetyPrice      string `json:"safety_price"`
}

// CollateralLiquidationData holds the per-collateral risk parameters.
// Ratios are plain multipliers (1.5 means 150%).
type CollateralLiquidationData struct {
	AccumulatedRate             string          `json:"accumulated_rate"`
	CurrentPrice                CollateralPrice `json:"current_price"`
	DebtFloor                   string          `json:"debt_floor"`
	DebtCeiling                 string          `json:"debt_ceiling"`
	TotalDebt                   string          `json:"total_debt"`
	LiquidationCRatio           string          `json:"liquidation_c_ratio"`
	LiquidationPenalty          string          `json:"liquidation_penalty"`
	SafetyCRatio                string          `json:"safety_c_ratio"`
	TotalAnnualizedStabilityFee string          `json:"total_annualized_stability_fee"`
}

// LiquidationData is the protocol-wide state plus every collateral's parameters.
type LiquidationData struct {
	CurrentRedemptionPrice    string                               `json:"current_redemption_price"`
	CurrentRedemptionRate     string                               `json:"current_redemption_rate"`
	GlobalDebt                string                               `json:"global_debt"`
	GlobalDebtCeiling         string                               `json:"global_debt_ceiling"`
	PerSafeDebtCeiling        string                               `json:"per_safe_debt_ceiling"`
	CollateralLiquidationData map[string]CollateralLiquidationData `json:"collateral_liquidation_data"`
}

// Collateral returns the parameters for a collateral name, if present.
func (l *LiquidationData) Collateral(name string) (*CollateralLiquidationData, bool) {
	if l == nil || l.CollateralLiquidationData == nil {
		return nil, false
	}
	data, ok := l.CollateralLiquidationData[name]
	if !ok {
		return nil, false
	}
	return &data, true
}
