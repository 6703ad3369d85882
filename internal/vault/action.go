package vault

import (
	"fmt"
	"strings"
)

// Action is the vault operation the user is preparing.
type Action int

const (
	ActionDepositBorrow Action = iota
	ActionWithdrawRepay
	ActionCreate
	ActionInfo
)

var actionNames = map[Action]string{
	ActionDepositBorrow: "deposit_borrow",
	ActionWithdrawRepay: "withdraw_repay",
	ActionCreate:        "create",
	ActionInfo:          "info",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction parses an action name such as "deposit_borrow" or "DEPOSIT_BORROW".
func ParseAction(input string) (Action, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	for action, name := range actionNames {
		if name == normalized {
			return action, nil
		}
	}
	return ActionInfo, fmt.Errorf("unknown action: %s", input)
}

// FormState holds the decimal-string inputs of the active form.
type FormState struct {
	Deposit  string `json:"deposit,omitempty"`
	Borrow   string `json:"borrow,omitempty"`
	Withdraw string `json:"withdraw,omitempty"`
	Repay    string `json:"repay,omitempty"`
}

// FormUpdate is a partial form change. Nil fields are left alone; a non-nil
// empty string clears the field.
type FormUpdate struct {
	Deposit  *string `json:"deposit,omitempty"`
	Borrow   *string `json:"borrow,omitempty"`
	Withdraw *string `json:"withdraw,omitempty"`
	Repay    *string `json:"repay,omitempty"`
}

// Update returns a FormUpdate that sets every field of f, empty ones included.
func (f FormState) Update() FormUpdate {
	return FormUpdate{Deposit: &f.Deposit, Borrow: &f.Borrow, Withdraw: &f.Withdraw, Repay: &f.Repay}
}

// Apply merges the present fields of update into the form.
func (f FormState) Apply(update FormUpdate) FormState {
	if update.Deposit != nil {
		f.Deposit = *update.Deposit
	}
	if update.Borrow != nil {
		f.Borrow = *update.Borrow
	}
	if update.Withdraw != nil {
		f.Withdraw = *update.Withdraw
	}
	if update.Repay != nil {
		f.Repay = *update.Repay
	}
	return f
}

// Validate reports the first field that is not a non-negative amount.
func (f FormState) Validate() error {
	fields := []struct{ name, value string }{
		{"deposit", f.Deposit},
		{"borrow", f.Borrow},
		{"withdraw", f.Withdraw},
		{"repay", f.Repay},
	}
	for _, field := range fields {
		amount, err := ParseAmount(field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		if amount.IsNegative() {
			return fmt.Errorf("%s: negative amount %q", field.name, field.value)
		}
	}
	return nil
}

// Inputs returns the (collateral, debt) fields that apply to action.
// Info has no inputs.
func (f FormState) Inputs(action Action) (string, string) {
	switch action {
	case ActionDepositBorrow, ActionCreate:
		return f.Deposit, f.Borrow
	case ActionWithdrawRepay:
		return f.Withdraw, f.Repay
	default:
		return "", ""
	}
}

// HasInput reports whether any field holds a positive amount.
func (f FormState) HasInput() bool {
	return isPositive(f.Deposit) || isPositive(f.Borrow) || isPositive(f.Withdraw) || isPositive(f.Repay)
}
