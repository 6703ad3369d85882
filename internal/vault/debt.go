package vault

import (
	"github.com/shopspring/decimal"

	"vaultScope/internal/model"
)

// Debt summarizes the HAI side of the active form.
type Debt struct {
	Total      string `json:"total"`
	Available  string `json:"available"`
	Balance    string `json:"balance"`
	PriceInUSD string `json:"price_in_usd"`
}

// DebtInput carries what BuildDebt combines.
type DebtInput struct {
	Action          Action
	Form            FormState
	Vault           *model.Safe
	Collateral      Collateral
	RedemptionPrice string
	WalletBalance   string
}

// BuildDebt projects the debt total after the pending form input. For
// borrows, availability is measured against the projected collateral.
func BuildDebt(in DebtInput) (Debt, error) {
	current := decimal.Zero
	if in.Vault != nil {
		var err error
		current, err = ParseAmount(in.Vault.DebtAmount())
		if err != nil {
			return Debt{}, err
		}
	}

	total := current
	available := current
	switch in.Action {
	case ActionDepositBorrow, ActionCreate:
		borrow, err := ParseAmount(in.Form.Borrow)
		if err != nil {
			return Debt{}, err
		}
		if borrow.IsPositive() {
			total = total.Add(borrow)
		}
		available = decimal.Zero
		if liq := in.Collateral.LiquidationData; liq != nil && liq.CurrentPrice.SafetyPrice != "" {
			raw, err := AvailableDebt(in.Collateral.Total, current.String(), liq.CurrentPrice.SafetyPrice)
			if err != nil {
				return Debt{}, err
			}
			available, _ = ParseAmount(raw)
		}
	case ActionWithdrawRepay:
		repay, err := ParseAmount(in.Form.Repay)
		if err != nil {
			return Debt{}, err
		}
		if repay.IsPositive() {
			total = decimal.Max(total.Sub(repay), decimal.Zero)
		}
	}

	price := in.RedemptionPrice
	if price == "" {
		price = "1"
	}
	balance := in.WalletBalance
	if balance == "" {
		balance = "0"
	}

	return Debt{
		Total:      total.String(),
		Available:  available.String(),
		Balance:    balance,
		PriceInUSD: price,
	}, nil
}
