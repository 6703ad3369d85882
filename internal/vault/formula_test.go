package vault

import "testing"

func TestCollateralRatio(t *testing.T) {
	cases := []struct {
		name                         string
		collateral, debt, price, lcr string
		want                         string
	}{
		{name: "basic", collateral: "10", debt: "5000", price: "1000", lcr: "1.5", want: "300"},
		{name: "rounds up", collateral: "2000", debt: "1600000", price: "0.98", lcr: "1.2", want: "0.15"},
		{name: "rounds up at second decimal", collateral: "10", debt: "10000", price: "1587.3", lcr: "1.2", want: "190.48"},
		{name: "keeps two decimals", collateral: "2", debt: "1500", price: "1587.3", lcr: "1.2", want: "253.97"},
		{name: "rounds down", collateral: "10", debt: "15000", price: "1587.3", lcr: "1.2", want: "126.98"},
		{name: "no collateral", collateral: "0", debt: "5000", price: "1000", lcr: "1.5", want: "0"},
		{name: "empty collateral", collateral: "", debt: "5000", price: "1000", lcr: "1.5", want: "0"},
		{name: "no debt", collateral: "10", debt: "0", price: "1000", lcr: "1.5", want: Infinity},
		{name: "currency input", collateral: "10", debt: "5,000", price: "$1000", lcr: "1.5", want: "300"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CollateralRatio(tc.collateral, tc.debt, tc.price, tc.lcr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ratio = %s, want %s", got, tc.want)
			}
		})
	}

	if _, err := CollateralRatio("abc", "1", "1", "1"); err == nil {
		t.Fatalf("expected error for invalid collateral")
	}
}

func TestLiquidationPrice(t *testing.T) {
	got, err := LiquidationPrice("10", "5000", "1.5", "1.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "787.5" {
		t.Fatalf("liquidation price = %s, want 787.5", got)
	}

	got, err = LiquidationPrice("2000", "1600000", "1.2", "1.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1008" {
		t.Fatalf("liquidation price = %s, want 1008", got)
	}

	for _, in := range [][2]string{{"0", "5000"}, {"10", "0"}} {
		got, err := LiquidationPrice(in[0], in[1], "1.5", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "0" {
			t.Fatalf("liquidation price for %v = %s, want 0", in, got)
		}
	}

	if _, err := LiquidationPrice("10", "5000", "x", "1"); err == nil {
		t.Fatalf("expected error for invalid ratio")
	}
}

func TestIsSafe(t *testing.T) {
	cases := []struct {
		collateral, debt, price string
		want                    bool
	}{
		{"10", "5000", "600", true},
		{"10", "5000", "500", true},
		{"10", "5000", "400", false},
		{"0", "0", "400", true},
		{"0", "", "", true},
	}
	for _, tc := range cases {
		got, err := IsSafe(tc.collateral, tc.debt, tc.price)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("IsSafe(%s, %s, %s) = %v, want %v", tc.collateral, tc.debt, tc.price, got, tc.want)
		}
	}
}

func TestAvailableDebt(t *testing.T) {
	got, err := AvailableDebt("10", "5000", "600")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1000" {
		t.Fatalf("available = %s, want 1000", got)
	}

	got, err = AvailableDebt("10", "5000", "400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0" {
		t.Fatalf("available = %s, want 0", got)
	}
}
