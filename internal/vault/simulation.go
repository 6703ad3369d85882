package vault

// Simulation is the projected state of a vault after the pending form input.
type Simulation struct {
	Collateral       string `json:"collateral,omitempty"`
	Debt             string `json:"debt,omitempty"`
	CollateralTotal  string `json:"collateral_total"`
	DebtTotal        string `json:"debt_total"`
	CollateralRatio  string `json:"collateral_ratio,omitempty"`
	RiskStatus       Status `json:"risk_status,omitempty"`
	LiquidationPrice string `json:"liquidation_price,omitempty"`
}

// Simulate projects ratio, risk and liquidation price for the pending
// input. It returns nil until one of the action's fields is positive.
// collateral and debt must already include the form input.
func Simulate(action Action, form FormState, collateral Collateral, debt Debt, redemptionPrice string) (*Simulation, error) {
	if !form.HasInput() {
		return nil, nil
	}

	collateralInput, debtInput := form.Inputs(action)
	if action == ActionInfo || (!isPositive(collateralInput) && !isPositive(debtInput)) {
		return nil, nil
	}

	sim := &Simulation{
		CollateralTotal: collateral.Total,
		DebtTotal:       debt.Total,
	}
	if isPositive(collateralInput) {
		sim.Collateral = collateralInput
	}
	if isPositive(debtInput) {
		sim.Debt = debtInput
	}

	liq := collateral.LiquidationData
	if liq == nil {
		return sim, nil
	}

	ratio, err := CollateralRatio(collateral.Total, debt.Total, liq.CurrentPrice.LiquidationPrice, liq.LiquidationCRatio)
	if err != nil {
		return nil, err
	}
	sim.CollateralRatio = ratio
	sim.RiskStatus = RiskStatus(ratio, liq.SafetyCRatio)

	if redemptionPrice != "" {
		price, err := LiquidationPrice(collateral.Total, debt.Total, liq.LiquidationCRatio, redemptionPrice)
		if err != nil {
			return nil, err
		}
		sim.LiquidationPrice = price
	}

	return sim, nil
}
