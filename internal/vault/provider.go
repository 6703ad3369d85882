package vault

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"vaultScope/internal/model"
)

// Env is the external state a Provider reads: protocol data from the
// subgraph and the connected wallet's addresses and balances.
type Env struct {
	Liquidation       *model.LiquidationData
	WalletAddress     string
	ProxyAddress      string
	CollateralBalance string
	HAIBalance        string
}

// VaultState is the aggregated value consumed by vault screens.
type VaultState struct {
	Vault                        *model.Safe   `json:"vault,omitempty"`
	Action                       string        `json:"action"`
	Form                         FormState     `json:"form"`
	Collateral                   Collateral    `json:"collateral"`
	Debt                         Debt          `json:"debt"`
	Simulation                   *Simulation   `json:"simulation,omitempty"`
	SafetyRatio                  *float64      `json:"safety_ratio,omitempty"`
	CollateralRatio              string        `json:"collateral_ratio"`
	LiquidationPrice             string        `json:"liquidation_price"`
	RiskStatus                   Status        `json:"risk_status"`
	IsSafe                       bool          `json:"is_safe"`
	LiquidationPenaltyPercentage float64       `json:"liquidation_penalty_percentage"`
	Progress                     RatioProgress `json:"progress"`
	Summary                      Summary       `json:"summary"`
	Error                        string        `json:"error,omitempty"`
	ErrorMessage                 string        `json:"error_message,omitempty"`
}

// Provider owns the active vault selection, the action and the form state.
// Everything else in VaultState is derived on each State call.
type Provider struct {
	mu             sync.RWMutex
	vault          *model.Safe
	collateralName string
	action         Action
	form           FormState
	logger         *zap.Logger
}

// NewProvider returns a Provider in the Info action with an empty form.
func NewProvider(logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		action:         ActionInfo,
		collateralName: DefaultCollateralName,
		logger:         logger,
	}
}

// SetActiveVault selects an existing vault, or prepares a new one for
// collateralName when create is true. The form is cleared.
func (p *Provider) SetActiveVault(create bool, collateralName string, safe *model.Safe) {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := collateralName
	if name == "" && safe != nil {
		name = safe.CollateralName
	}
	if name == "" {
		name = DefaultCollateralName
	}
	p.collateralName = name
	p.form = FormState{}

	if create {
		p.vault = nil
		p.action = ActionCreate
	} else {
		p.vault = safe
		p.action = ActionDepositBorrow
	}

	vaultID := ""
	if p.vault != nil {
		vaultID = p.vault.ID
	}
	p.logger.Debug("active vault set",
		zap.Bool("create", create),
		zap.String("collateral", name),
		zap.String("vault", vaultID),
	)
}

// SetAction switches the action and clears the form.
func (p *Provider) SetAction(action Action) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.action != action {
		p.form = FormState{}
	}
	p.action = action
}

// UpdateForm merges update into the form.
func (p *Provider) UpdateForm(update FormUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = p.form.Apply(update)
}

// ClearForm empties the form.
func (p *Provider) ClearForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = FormState{}
}

// Action returns the current action.
func (p *Provider) Action() Action {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.action
}

// Form returns a copy of the form state.
func (p *Provider) Form() FormState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.form
}

// State derives the full vault state from the owned selection and env.
func (p *Provider) State(env Env) (VaultState, error) {
	p.mu.RLock()
	safe := p.vault
	name := p.collateralName
	action := p.action
	form := p.form
	p.mu.RUnlock()

	return Derive(DeriveInput{
		Vault:          safe,
		CollateralName: name,
		Action:         action,
		Form:           form,
		Env:            env,
	})
}

// DeriveInput is the full input of Derive.
type DeriveInput struct {
	Vault          *model.Safe
	CollateralName string
	Action         Action
	Form           FormState
	Env            Env
}

// Derive computes a VaultState. It is a pure function of its input.
func Derive(in DeriveInput) (VaultState, error) {
	var liq *model.CollateralLiquidationData
	name := in.CollateralName
	if name == "" && in.Vault != nil {
		name = in.Vault.CollateralName
	}
	if data, ok := in.Env.Liquidation.Collateral(name); ok {
		liq = data
	}
	redemptionPrice := ""
	if in.Env.Liquidation != nil {
		redemptionPrice = in.Env.Liquidation.CurrentRedemptionPrice
	}

	collateral, err := BuildCollateral(CollateralInput{
		Action:          in.Action,
		Form:            in.Form,
		Vault:           in.Vault,
		Name:            name,
		LiquidationData: liq,
		WalletBalance:   in.Env.CollateralBalance,
	})
	if err != nil {
		return VaultState{}, err
	}

	debt, err := BuildDebt(DebtInput{
		Action:          in.Action,
		Form:            in.Form,
		Vault:           in.Vault,
		Collateral:      collateral,
		RedemptionPrice: redemptionPrice,
		WalletBalance:   in.Env.HAIBalance,
	})
	if err != nil {
		return VaultState{}, err
	}

	state := VaultState{
		Vault:      in.Vault,
		Action:     in.Action.String(),
		Form:       in.Form,
		Collateral: collateral,
		Debt:       debt,
		IsSafe:     true,
	}

	if liq != nil && redemptionPrice != "" && liq.LiquidationCRatio != "" {
		state.LiquidationPrice, err = LiquidationPrice(collateral.Total, debt.Total, liq.LiquidationCRatio, redemptionPrice)
		if err != nil {
			return VaultState{}, err
		}
	}

	switch {
	case in.Vault != nil && in.Vault.CollateralRatio != "":
		state.CollateralRatio = in.Vault.CollateralRatio
	case liq != nil && liq.CurrentPrice.LiquidationPrice != "" && liq.LiquidationCRatio != "":
		state.CollateralRatio, err = CollateralRatio(collateral.Total, debt.Total, liq.CurrentPrice.LiquidationPrice, liq.LiquidationCRatio)
		if err != nil {
			return VaultState{}, err
		}
	default:
		state.CollateralRatio = "0"
	}

	safetyCRatio := ""
	if liq != nil {
		safetyCRatio = liq.SafetyCRatio
		if f, err := strconv.ParseFloat(liq.SafetyCRatio, 64); err == nil {
			pct := 100 * f
			state.SafetyRatio = &pct
		}
		if penalty, err := strconv.ParseFloat(liq.LiquidationPenalty, 64); err == nil {
			state.LiquidationPenaltyPercentage = penalty - 1
		} else {
			state.LiquidationPenaltyPercentage = -1
		}
		if liq.CurrentPrice.SafetyPrice != "" {
			state.IsSafe, err = IsSafe(collateral.Total, debt.Total, liq.CurrentPrice.SafetyPrice)
			if err != nil {
				return VaultState{}, err
			}
		}
	} else {
		state.LiquidationPenaltyPercentage = -1
	}
	state.RiskStatus = RiskStatus(state.CollateralRatio, safetyCRatio)
	state.Progress = BuildRatioProgress(state.CollateralRatio, safetyCRatio)

	state.Simulation, err = Simulate(in.Action, in.Form, collateral, debt, redemptionPrice)
	if err != nil {
		return VaultState{}, err
	}

	simulatedRatio := ""
	if state.Simulation != nil {
		simulatedRatio = state.Simulation.CollateralRatio
	}
	state.Summary = BuildSummary(SummaryInput{
		Vault:            in.Vault,
		Collateral:       collateral,
		Debt:             debt,
		SimulatedRatio:   simulatedRatio,
		CollateralRatio:  state.CollateralRatio,
		LiquidationPrice: state.LiquidationPrice,
	})

	if code, msg, ok := ClassifyError(ErrorInput{
		Action:        in.Action,
		Form:          in.Form,
		WalletAddress: in.Env.WalletAddress,
		ProxyAddress:  in.Env.ProxyAddress,
		Collateral:    collateral,
		Debt:          debt,
		IsSafe:        state.IsSafe,
		Liquidation:   in.Env.Liquidation,
	}); ok {
		state.Error = code.String()
		state.ErrorMessage = msg
	}

	return state, nil
}
