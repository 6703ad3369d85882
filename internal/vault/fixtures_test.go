package vault

import "vaultScope/internal/model"

func sampleSafe() *model.Safe {
	return &model.Safe{
		ID:                          "123",
		RiskState:                   1,
		CollateralName:              "WETH",
		Collateral:                  "2000",
		Debt:                        "1600000",
		TotalDebt:                   "1600000",
		AvailableDebt:               "1600000",
		CollateralRatio:             "250",
		CurrentRedemptionPrice:      "$1.05",
		CurrentLiquidationPrice:     "$0.98",
		InternalCollateralBalance:   "2000",
		LiquidationCRatio:           "120",
		LiquidationPrice:            "1365.43",
		TotalAnnualizedStabilityFee: "0.072",
	}
}

func sampleLiquidation() *model.LiquidationData {
	return &model.LiquidationData{
		CurrentRedemptionPrice: "1.05",
		GlobalDebt:             "5000000",
		GlobalDebtCeiling:      "10000000",
		PerSafeDebtCeiling:     "3000000",
		CollateralLiquidationData: map[string]model.CollateralLiquidationData{
			"WETH": {
				AccumulatedRate: "1",
				CurrentPrice: model.CollateralPrice{
					Value:            "2000",
					LiquidationPrice: "1587.3",
					SafetyPrice:      "1410.9",
				},
				DebtFloor:          "100",
				DebtCeiling:        "8000000",
				TotalDebt:          "4000000",
				LiquidationCRatio:  "1.2",
				LiquidationPenalty: "1.1",
				SafetyCRatio:       "1.35",
			},
		},
	}
}

func sampleEnv() Env {
	return Env{
		Liquidation:       sampleLiquidation(),
		WalletAddress:     "0x1111111111111111111111111111111111111111",
		ProxyAddress:      "0x2222222222222222222222222222222222222222",
		CollateralBalance: "50",
		HAIBalance:        "10000",
	}
}
