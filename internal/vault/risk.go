package vault

import (
	"math"
	"strconv"
	"strings"
)

// RiskState is the coarse safety margin of a vault.
type RiskState int

const (
	RiskNoDebt RiskState = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskUnknown
)

// Status is the display form of a RiskState.
type Status string

const (
	StatusSafe    Status = "Safe"
	StatusOkay    Status = "Okay"
	StatusUnsafe  Status = "Unsafe"
	StatusNoDebt  Status = "No Debt"
	StatusUnknown Status = "Unknown"
)

const (
	safestRatioFactor = 2.2
	midRatioFactor    = 1.5
)

var riskStateToStatus = map[RiskState]Status{
	RiskNoDebt:  StatusNoDebt,
	RiskLow:     StatusSafe,
	RiskMedium:  StatusOkay,
	RiskHigh:    StatusUnsafe,
	RiskUnknown: StatusUnknown,
}

// RatioChecker classifies a collateral ratio (percent) against a safety
// ratio (multiplier, e.g. 1.35).
func RatioChecker(ratio, safetyCRatio float64) RiskState {
	if math.IsNaN(ratio) || math.IsNaN(safetyCRatio) || safetyCRatio <= 0 || ratio < 0 {
		return RiskUnknown
	}

	safetyPercent := safetyCRatio * 100
	safest := safetyPercent * safestRatioFactor
	mid := safetyPercent * midRatioFactor

	switch {
	case ratio == 0:
		return RiskNoDebt
	case ratio >= safest:
		return RiskLow
	case ratio >= mid:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// StatusOf maps a RiskState to its display status.
func StatusOf(state RiskState) Status {
	if status, ok := riskStateToStatus[state]; ok {
		return status
	}
	return StatusUnknown
}

// RiskStatus parses ratio and safety ratio strings and classifies them.
// Missing or non-numeric input yields StatusUnknown.
func RiskStatus(collateralRatio, safetyCRatio string) Status {
	return StatusOf(RatioChecker(parseRatio(collateralRatio), parseRatio(safetyCRatio)))
}

func parseRatio(value string) float64 {
	value = strings.TrimSpace(value)
	if value == Infinity {
		return math.Inf(1)
	}
	if value == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
