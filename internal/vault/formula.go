package vault

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Infinity is the collateral ratio of a vault that holds collateral but no debt.
const Infinity = "∞"

const formulaDecimals = 2

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a decimal string. Empty input is zero; currency
// symbols and thousands separators are ignored.
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return d, nil
}

func isPositive(value string) bool {
	d, err := ParseAmount(value)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

func parseAll(values ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(values))
	for _, value := range values {
		d, err := ParseAmount(value)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// CollateralRatio returns collateral*liquidationPrice*liquidationCRatio/debt
// as a percentage. The liquidation price is the oracle price already scaled
// down by the liquidation ratio, so the product is the collateral value in
// debt units.
func CollateralRatio(totalCollateral, totalDebt, liquidationPrice, liquidationCRatio string) (string, error) {
	values, err := parseAll(totalCollateral, totalDebt, liquidationPrice, liquidationCRatio)
	if err != nil {
		return "", err
	}
	collateral, debt, price, cRatio := values[0], values[1], values[2], values[3]

	if collateral.IsZero() {
		return "0", nil
	}
	if debt.IsZero() {
		return Infinity, nil
	}

	ratio := collateral.Mul(price).Mul(cRatio).Div(debt).Mul(hundred)
	return ratio.Round(formulaDecimals).String(), nil
}

// LiquidationPrice returns the collateral price at which the vault can be liquidated.
func LiquidationPrice(totalCollateral, totalDebt, liquidationCRatio, redemptionPrice string) (string, error) {
	values, err := parseAll(totalCollateral, totalDebt, liquidationCRatio, redemptionPrice)
	if err != nil {
		return "", err
	}
	collateral, debt, cRatio, redemption := values[0], values[1], values[2], values[3]

	if collateral.IsZero() || debt.IsZero() {
		return "0", nil
	}

	price := debt.Mul(redemption).Mul(cRatio).Div(collateral)
	return price.Round(formulaDecimals).String(), nil
}

// IsSafe reports whether the debt is covered by collateral valued at the safety price.
func IsSafe(totalCollateral, totalDebt, safetyPrice string) (bool, error) {
	values, err := parseAll(totalCollateral, totalDebt, safetyPrice)
	if err != nil {
		return false, err
	}
	collateral, debt, price := values[0], values[1], values[2]

	if !debt.IsPositive() {
		return true, nil
	}
	return collateral.Mul(price).GreaterThanOrEqual(debt), nil
}

// AvailableDebt returns how much more debt the collateral supports at the safety price.
func AvailableDebt(totalCollateral, currentDebt, safetyPrice string) (string, error) {
	values, err := parseAll(totalCollateral, currentDebt, safetyPrice)
	if err != nil {
		return "", err
	}
	collateral, debt, price := values[0], values[1], values[2]

	available := collateral.Mul(price).Sub(debt)
	if available.IsNegative() {
		return "0", nil
	}
	return available.String(), nil
}
