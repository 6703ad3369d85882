package vault

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestProviderSampleVaultState(t *testing.T) {
	p := NewProvider(zap.NewNop())
	p.SetActiveVault(false, "", sampleSafe())

	state, err := p.State(sampleEnv())
	if err != nil {
		t.Fatalf("state: %v", err)
	}

	if state.Action != "deposit_borrow" {
		t.Fatalf("action = %s", state.Action)
	}
	if state.CollateralRatio != "250" {
		t.Fatalf("collateral ratio = %s, want reported 250", state.CollateralRatio)
	}
	if state.Summary.LiquidationPrice.Current == nil || state.Summary.LiquidationPrice.Current.Raw != "1365.43" {
		t.Fatalf("current liquidation price mismatch: %+v", state.Summary.LiquidationPrice.Current)
	}
	if state.Summary.CollateralRatio.Current == nil || state.Summary.CollateralRatio.Current.Raw != "250" {
		t.Fatalf("current ratio mismatch: %+v", state.Summary.CollateralRatio.Current)
	}
	if state.LiquidationPrice != "1008" {
		t.Fatalf("computed liquidation price = %s, want 1008", state.LiquidationPrice)
	}
	if state.RiskStatus != StatusOkay {
		t.Fatalf("risk status = %s", state.RiskStatus)
	}
	if state.SafetyRatio == nil || math.Abs(*state.SafetyRatio-135) > 1e-9 {
		t.Fatalf("safety ratio mismatch: %v", state.SafetyRatio)
	}
	if math.Abs(state.LiquidationPenaltyPercentage-0.1) > 1e-9 {
		t.Fatalf("penalty = %v", state.LiquidationPenaltyPercentage)
	}
	if !state.IsSafe {
		t.Fatalf("expected safe vault")
	}
	if state.Simulation != nil {
		t.Fatalf("expected no simulation without input")
	}
	if state.Error != "ZERO_AMOUNT" {
		t.Fatalf("error = %s", state.Error)
	}
}

func TestProviderFormLifecycle(t *testing.T) {
	p := NewProvider(nil)
	if p.Action() != ActionInfo {
		t.Fatalf("initial action = %v", p.Action())
	}

	p.SetActiveVault(false, "", sampleSafe())
	p.UpdateForm(FormUpdate{Deposit: strPtr("5")})
	p.UpdateForm(FormUpdate{Borrow: strPtr("100")})
	if got := p.Form(); got.Deposit != "5" || got.Borrow != "100" {
		t.Fatalf("form merge mismatch: %+v", got)
	}

	state, err := p.State(sampleEnv())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Simulation == nil {
		t.Fatalf("expected simulation")
	}
	if state.Summary.Collateral.After.Raw != "2005" {
		t.Fatalf("after collateral = %s", state.Summary.Collateral.After.Raw)
	}
	if state.Error != "" {
		t.Fatalf("unexpected error %s: %s", state.Error, state.ErrorMessage)
	}

	p.SetAction(ActionWithdrawRepay)
	if got := p.Form(); got != (FormState{}) {
		t.Fatalf("form should clear on action change: %+v", got)
	}

	p.UpdateForm(FormUpdate{Repay: strPtr("1")})
	p.SetAction(ActionWithdrawRepay)
	if got := p.Form(); got.Repay != "1" {
		t.Fatalf("form should survive same action: %+v", got)
	}

	p.ClearForm()
	if got := p.Form(); got != (FormState{}) {
		t.Fatalf("form should be empty: %+v", got)
	}
}

func TestProviderClearField(t *testing.T) {
	p := NewProvider(nil)
	p.SetActiveVault(false, "", sampleSafe())
	p.UpdateForm(FormUpdate{Deposit: strPtr("5")})

	state, err := p.State(sampleEnv())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Simulation == nil {
		t.Fatalf("expected simulation after deposit")
	}

	p.UpdateForm(FormUpdate{Deposit: strPtr("")})
	if got := p.Form(); got.Deposit != "" {
		t.Fatalf("deposit should be cleared: %+v", got)
	}
	state, err = p.State(sampleEnv())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Simulation != nil {
		t.Fatalf("simulation should stop once the field is cleared")
	}
	if state.Error != "ZERO_AMOUNT" {
		t.Fatalf("error = %s", state.Error)
	}
}

func TestFormValidate(t *testing.T) {
	if err := (FormState{Deposit: "1.5", Borrow: "$1,000"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, form := range []FormState{{Deposit: "abc"}, {Withdraw: "-1"}} {
		if err := form.Validate(); err == nil {
			t.Fatalf("expected error for %+v", form)
		}
	}
}

func strPtr(v string) *string { return &v }

func TestProviderCreate(t *testing.T) {
	p := NewProvider(nil)
	p.SetActiveVault(true, "WETH", nil)
	if p.Action() != ActionCreate {
		t.Fatalf("action = %v", p.Action())
	}

	p.UpdateForm(FormState{Deposit: "2", Borrow: "1500"}.Update())
	state, err := p.State(sampleEnv())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Vault != nil {
		t.Fatalf("create should have no vault")
	}
	if state.Summary.Collateral.Current != nil {
		t.Fatalf("create should have no current values")
	}
	if state.CollateralRatio != "253.97" {
		t.Fatalf("collateral ratio = %s", state.CollateralRatio)
	}
	if state.Error != "" {
		t.Fatalf("unexpected error %s", state.Error)
	}
}

func TestProviderWithoutLiquidationData(t *testing.T) {
	p := NewProvider(nil)
	p.SetActiveVault(false, "", sampleSafe())

	state, err := p.State(Env{})
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.RiskStatus != StatusUnknown {
		t.Fatalf("risk status = %s", state.RiskStatus)
	}
	if state.LiquidationPrice != "" {
		t.Fatalf("liquidation price = %s", state.LiquidationPrice)
	}
	if state.Error != "NO_WALLET" {
		t.Fatalf("error = %s", state.Error)
	}
}

func TestActionParse(t *testing.T) {
	for _, in := range []string{"deposit_borrow", "DEPOSIT_BORROW", "deposit-borrow"} {
		got, err := ParseAction(in)
		if err != nil || got != ActionDepositBorrow {
			t.Fatalf("ParseAction(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseAction("liquidate"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
