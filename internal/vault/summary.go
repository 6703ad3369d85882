package vault

import (
	"vaultScope/internal/format"
	"vaultScope/internal/model"
)

// SummaryValue is a raw value with its display form and optional USD value.
type SummaryValue struct {
	Raw          string `json:"raw"`
	Formatted    string `json:"formatted"`
	USDRaw       string `json:"usd_raw,omitempty"`
	USDFormatted string `json:"usd_formatted,omitempty"`
}

// SummaryItem pairs the current value (absent for new vaults) with the projected one.
type SummaryItem struct {
	Current *SummaryValue `json:"current,omitempty"`
	After   SummaryValue  `json:"after"`
}

// Summary is the before/after overview of a vault under the pending input.
type Summary struct {
	Collateral       SummaryItem `json:"collateral"`
	Debt             SummaryItem `json:"debt"`
	CollateralRatio  SummaryItem `json:"collateral_ratio"`
	LiquidationPrice SummaryItem `json:"liquidation_price"`
}

// SummaryInput carries what BuildSummary combines.
type SummaryInput struct {
	Vault            *model.Safe
	Collateral       Collateral
	Debt             Debt
	SimulatedRatio   string
	CollateralRatio  string
	LiquidationPrice string
}

// BuildSummary renders current and projected values side by side.
func BuildSummary(in SummaryInput) Summary {
	percent := format.Options{Style: format.StylePercent, MaxDecimals: 1}
	currency := format.Options{Style: format.StyleCurrency}

	afterRatio := in.SimulatedRatio
	if afterRatio == "" {
		afterRatio = in.CollateralRatio
	}

	summary := Summary{
		Collateral: SummaryItem{
			After: amountValue(in.Collateral.Total, in.Collateral.PriceInUSD),
		},
		Debt: SummaryItem{
			After: amountValue(in.Debt.Total, in.Debt.PriceInUSD),
		},
		CollateralRatio: SummaryItem{
			After: SummaryValue{Raw: afterRatio, Formatted: format.Number(afterRatio, percent)},
		},
		LiquidationPrice: SummaryItem{
			After: SummaryValue{Raw: in.LiquidationPrice, Formatted: format.Number(in.LiquidationPrice, currency)},
		},
	}

	if in.Vault == nil {
		return summary
	}

	collateral := amountValue(in.Vault.Collateral, in.Collateral.PriceInUSD)
	debt := amountValue(in.Vault.DebtAmount(), in.Debt.PriceInUSD)
	summary.Collateral.Current = &collateral
	summary.Debt.Current = &debt

	currentRatio := in.Vault.CollateralRatio
	if currentRatio == "" {
		currentRatio = in.CollateralRatio
	}
	summary.CollateralRatio.Current = &SummaryValue{Raw: currentRatio, Formatted: format.Number(currentRatio, percent)}

	currentPrice := in.Vault.LiquidationPrice
	if currentPrice == "" {
		currentPrice = in.LiquidationPrice
	}
	summary.LiquidationPrice.Current = &SummaryValue{Raw: currentPrice, Formatted: format.Number(currentPrice, currency)}

	return summary
}

func amountValue(amount, price string) SummaryValue {
	value := SummaryValue{Raw: amount, Formatted: format.Amount(amount)}
	if price == "" {
		return value
	}
	a, err := ParseAmount(amount)
	if err != nil {
		return value
	}
	p, err := ParseAmount(price)
	if err != nil {
		return value
	}
	usd := a.Mul(p).String()
	value.USDRaw = usd
	value.USDFormatted = format.USD(usd)
	return value
}
