package vault

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vaultScope/internal/model"
)

// InfoError is a validation state of the active form. It is not a Go error:
// the form stays editable until the condition clears.
type InfoError int

const (
	ErrNoWallet InfoError = iota
	ErrNoProxy
	ErrInsufficientCollateral
	ErrInsufficientHAI
	ErrWithdrawExceedsCollateral
	ErrRepayExceedsOwed
	ErrZeroAmount
	ErrDebtTotal
	ErrCollateralRatio
	ErrGlobalDebtCeiling
	ErrHAIDebtCeiling
	ErrIndividualDebtCeiling
	ErrMinimumMint
)

var infoErrorMessages = map[InfoError]string{
	ErrNoWallet:                  "Connect a valid wallet to continue",
	ErrNoProxy:                   "Create a proxy contract to continue",
	ErrInsufficientCollateral:    "Insufficient collateral balance",
	ErrInsufficientHAI:           "Insufficient $HAI balance",
	ErrWithdrawExceedsCollateral: "Withdraw amount cannot exceed collateral balance",
	ErrRepayExceedsOwed:          "Repay amount cannot exceed $HAI debt balance",
	ErrZeroAmount:                "Please enter a non-zero amount of collateral and/or $HAI",
	ErrGlobalDebtCeiling:         "Cannot exceed global debt ceiling",
	ErrHAIDebtCeiling:            "Cannot exceed HAI debt ceiling",
	ErrMinimumMint:               "You must mint at least 1 $HAI to create a Vault",
}

var infoErrorCodes = map[InfoError]string{
	ErrNoWallet:                  "NO_WALLET",
	ErrNoProxy:                   "NO_PROXY",
	ErrInsufficientCollateral:    "INSUFFICIENT_COLLATERAL",
	ErrInsufficientHAI:           "INSUFFICIENT_HAI",
	ErrWithdrawExceedsCollateral: "WITHDRAW_EXCEEDS_COLLATERAL",
	ErrRepayExceedsOwed:          "REPAY_EXCEEDS_OWED",
	ErrZeroAmount:                "ZERO_AMOUNT",
	ErrDebtTotal:                 "DEBT_TOTAL",
	ErrCollateralRatio:           "COLLATERAL_RATIO",
	ErrGlobalDebtCeiling:         "GLOBAL_DEBT_CEILING",
	ErrHAIDebtCeiling:            "HAI_DEBT_CEILING",
	ErrIndividualDebtCeiling:     "INDIVIDUAL_DEBT_CEILING",
	ErrMinimumMint:               "MINIMUM_MINT",
}

var minimumMint = decimal.NewFromInt(1)

func (e InfoError) String() string {
	if code, ok := infoErrorCodes[e]; ok {
		return code
	}
	return fmt.Sprintf("INFO_ERROR_%d", int(e))
}

// Message returns the fixed user-facing message, empty for codes whose
// message depends on protocol parameters.
func (e InfoError) Message() string {
	return infoErrorMessages[e]
}

// ErrorInput is the aggregated state the classifier inspects.
type ErrorInput struct {
	Action        Action
	Form          FormState
	WalletAddress string
	ProxyAddress  string
	Collateral    Collateral
	Debt          Debt
	IsSafe        bool
	Liquidation   *model.LiquidationData
}

// ClassifyError returns the first failing check, its message and true, or
// false when the form is valid. Order: wallet, proxy, balances (wallet HAI
// before vault collateral and debt), zero amount, minimum mint, debt floor,
// collateral ratio, ceilings.
func ClassifyError(in ErrorInput) (InfoError, string, bool) {
	if in.WalletAddress == "" {
		return found(ErrNoWallet)
	}
	if in.ProxyAddress == "" {
		return found(ErrNoProxy)
	}
	if in.Action == ActionInfo {
		return 0, "", false
	}

	left, right := in.Form.Inputs(in.Action)
	leftAmount := parseOrZero(left)
	rightAmount := parseOrZero(right)

	switch in.Action {
	case ActionDepositBorrow, ActionCreate:
		if leftAmount.GreaterThan(parseOrZero(in.Collateral.Balance)) {
			return found(ErrInsufficientCollateral)
		}
	case ActionWithdrawRepay:
		if rightAmount.GreaterThan(parseOrZero(in.Debt.Balance)) {
			return found(ErrInsufficientHAI)
		}
		if leftAmount.GreaterThan(parseOrZero(in.Collateral.Available)) {
			return found(ErrWithdrawExceedsCollateral)
		}
		if rightAmount.GreaterThan(parseOrZero(in.Debt.Available)) {
			return found(ErrRepayExceedsOwed)
		}
	}

	if !leftAmount.IsPositive() && !rightAmount.IsPositive() {
		return found(ErrZeroAmount)
	}

	if in.Action == ActionCreate && rightAmount.LessThan(minimumMint) {
		return found(ErrMinimumMint)
	}

	liq := in.Collateral.LiquidationData
	total := parseOrZero(in.Debt.Total)
	if liq != nil && liq.DebtFloor != "" {
		floor := parseOrZero(liq.DebtFloor)
		if total.IsPositive() && total.LessThan(floor) {
			return ErrDebtTotal, fmt.Sprintf("The resulting debt should be at least %s $HAI or zero", floor.String()), true
		}
	}

	if !in.IsSafe {
		msg := "Too much debt, which would bring the vault below its safety ratio"
		if liq != nil && liq.SafetyCRatio != "" {
			safety := parseOrZero(liq.SafetyCRatio).Mul(hundred)
			msg = fmt.Sprintf("Too much debt, which would bring vault below the %s%% collateralization ratio", safety.String())
		}
		return ErrCollateralRatio, msg, true
	}

	if in.Action == ActionWithdrawRepay || !rightAmount.IsPositive() {
		return 0, "", false
	}

	if in.Liquidation != nil && in.Liquidation.GlobalDebtCeiling != "" {
		projected := parseOrZero(in.Liquidation.GlobalDebt).Add(rightAmount)
		if projected.GreaterThan(parseOrZero(in.Liquidation.GlobalDebtCeiling)) {
			return found(ErrGlobalDebtCeiling)
		}
	}
	if liq != nil && liq.DebtCeiling != "" {
		projected := parseOrZero(liq.TotalDebt).Add(rightAmount)
		if projected.GreaterThan(parseOrZero(liq.DebtCeiling)) {
			return found(ErrHAIDebtCeiling)
		}
	}
	if in.Liquidation != nil && in.Liquidation.PerSafeDebtCeiling != "" {
		ceiling := parseOrZero(in.Liquidation.PerSafeDebtCeiling)
		if total.GreaterThan(ceiling) {
			return ErrIndividualDebtCeiling, fmt.Sprintf("Individual vault can't have more than %s $HAI of debt", ceiling.String()), true
		}
	}

	return 0, "", false
}

func found(e InfoError) (InfoError, string, bool) {
	return e, e.Message(), true
}

func parseOrZero(value string) decimal.Decimal {
	d, err := ParseAmount(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}
