package vault

import (
	"github.com/shopspring/decimal"

	"vaultScope/internal/model"
)

// DefaultCollateralName is used when neither the vault nor the caller names one.
const DefaultCollateralName = "WETH"

// Collateral summarizes the collateral side of the active form.
type Collateral struct {
	Name            string                           `json:"name"`
	Total           string                           `json:"total"`
	Available       string                           `json:"available"`
	Balance         string                           `json:"balance"`
	PriceInUSD      string                           `json:"price_in_usd,omitempty"`
	LiquidationData *model.CollateralLiquidationData `json:"liquidation_data,omitempty"`
}

// CollateralInput carries what BuildCollateral combines.
type CollateralInput struct {
	Action          Action
	Form            FormState
	Vault           *model.Safe
	Name            string
	LiquidationData *model.CollateralLiquidationData
	WalletBalance   string
}

// BuildCollateral projects the collateral total after the pending form input.
func BuildCollateral(in CollateralInput) (Collateral, error) {
	name := in.Name
	if name == "" && in.Vault != nil {
		name = in.Vault.CollateralName
	}
	if name == "" {
		name = DefaultCollateralName
	}

	current := decimal.Zero
	if in.Vault != nil {
		var err error
		current, err = ParseAmount(in.Vault.Collateral)
		if err != nil {
			return Collateral{}, err
		}
	}

	total := current
	available := current
	switch in.Action {
	case ActionDepositBorrow, ActionCreate:
		deposit, err := ParseAmount(in.Form.Deposit)
		if err != nil {
			return Collateral{}, err
		}
		if deposit.IsPositive() {
			total = total.Add(deposit)
		}
		available, err = ParseAmount(in.WalletBalance)
		if err != nil {
			return Collateral{}, err
		}
	case ActionWithdrawRepay:
		withdraw, err := ParseAmount(in.Form.Withdraw)
		if err != nil {
			return Collateral{}, err
		}
		if withdraw.IsPositive() {
			total = decimal.Max(total.Sub(withdraw), decimal.Zero)
		}
	}

	out := Collateral{
		Name:            name,
		Total:           total.String(),
		Available:       available.String(),
		Balance:         in.WalletBalance,
		LiquidationData: in.LiquidationData,
	}
	if out.Balance == "" {
		out.Balance = "0"
	}
	if in.LiquidationData != nil {
		out.PriceInUSD = in.LiquidationData.CurrentPrice.Value
	}
	return out, nil
}
