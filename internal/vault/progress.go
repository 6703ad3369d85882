package vault

import (
	"math"
	"strconv"
)

const progressMaxFactor = 2.5

// ProgressLabel marks a threshold on the ratio progress bar.
type ProgressLabel struct {
	Progress float64 `json:"progress"`
	Percent  int     `json:"percent"`
	Label    string  `json:"label"`
}

// RatioProgress is the data behind the collateral ratio progress bar.
type RatioProgress struct {
	Progress    float64         `json:"progress"`
	Label       string          `json:"label"`
	Labels      []ProgressLabel `json:"labels,omitempty"`
	ColorLimits [3]float64      `json:"color_limits"`
}

// BuildRatioProgress places a collateral ratio (percent) on a bar whose end
// is 2.5x the safety ratio, with markers at 1x, 1.5x and 2.2x.
func BuildRatioProgress(collateralRatio, safetyCRatio string) RatioProgress {
	empty := RatioProgress{Label: "0%", ColorLimits: [3]float64{0, 0.5, 1}}

	ratio := parseRatio(collateralRatio)
	safety := parseRatio(safetyCRatio)
	if math.IsNaN(ratio) || math.IsNaN(safety) || safety <= 0 {
		return empty
	}

	min := math.Round(safety*100*1e9) / 1e9
	max := min * progressMaxFactor
	labels := []ProgressLabel{
		{Progress: 1 / progressMaxFactor, Percent: int(math.Floor(min)), Label: "LIQUIDATION"},
		{Progress: midRatioFactor / progressMaxFactor, Percent: int(math.Floor(midRatioFactor * min)), Label: "OKAY"},
		{Progress: safestRatioFactor / progressMaxFactor, Percent: int(math.Floor(safestRatioFactor * min)), Label: "SAFE"},
	}

	label := strconv.FormatFloat(math.Round(ratio*10)/10, 'f', -1, 64) + "%"
	if math.IsInf(ratio, 1) {
		label = Infinity + "%"
	}

	return RatioProgress{
		Progress:    math.Min(ratio, max) / max,
		Label:       label,
		Labels:      labels,
		ColorLimits: [3]float64{labels[0].Progress, labels[1].Progress, labels[2].Progress},
	}
}
