package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

type fakeCaller struct {
	calls     map[string]int
	responses map[string][]byte
	err       error
}

func newFakeCaller(t *testing.T, supply *big.Int, balance *big.Int, decimals uint8) *fakeCaller {
	t.Helper()
	tokenABI, err := ERC20ABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	pack := func(method string, value interface{}) []byte {
		out, err := tokenABI.Methods[method].Outputs.Pack(value)
		if err != nil {
			t.Fatalf("pack %s: %v", method, err)
		}
		return out
	}

	return &fakeCaller{
		calls: make(map[string]int),
		responses: map[string][]byte{
			"totalSupply": pack("totalSupply", supply),
			"balanceOf":   pack("balanceOf", balance),
			"decimals":    pack("decimals", decimals),
		},
	}
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	tokenABI, _ := ERC20ABI()
	method, err := tokenABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls[method.Name]++
	return f.responses[method.Name], nil
}

func TestTokenFormattedReads(t *testing.T) {
	supply, _ := new(big.Int).SetString("1234500000000000000000", 10)
	balance, _ := new(big.Int).SetString("2500000000000000000", 10)
	caller := newFakeCaller(t, supply, balance, 18)

	token, err := NewToken(caller, "0xf467C7d5a4A9C4687fFc7986aC6aD5A4c81E1404")
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	got, err := token.FormattedTotalSupply(context.Background())
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if got != "1234.5" {
		t.Fatalf("total supply = %s", got)
	}

	got, err = token.FormattedBalanceOf(context.Background(), "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != "2.5" {
		t.Fatalf("balance = %s", got)
	}

	if caller.calls["decimals"] != 1 {
		t.Fatalf("decimals should be cached, calls = %d", caller.calls["decimals"])
	}
	if token.Address() != common.HexToAddress("0xf467C7d5a4A9C4687fFc7986aC6aD5A4c81E1404") {
		t.Fatalf("address mismatch")
	}
}

func TestTokenErrors(t *testing.T) {
	if _, err := NewToken(nil, "0x1111111111111111111111111111111111111111"); err == nil {
		t.Fatalf("expected error for nil caller")
	}

	caller := &fakeCaller{err: errors.New("rpc down")}
	if _, err := NewToken(caller, "not-an-address"); err == nil {
		t.Fatalf("expected error for invalid address")
	}

	token, err := NewToken(caller, "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, err := token.TotalSupply(context.Background()); err == nil {
		t.Fatalf("expected rpc error")
	}
	if _, err := token.BalanceOf(context.Background(), "bad"); err == nil {
		t.Fatalf("expected invalid owner error")
	}
}

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		value    string
		decimals uint8
		want     string
	}{
		{"1000000000000000000", 18, "1.0"},
		{"1500000000000000000", 18, "1.5"},
		{"0", 18, "0.0"},
		{"-25", 1, "-2.5"},
		{"42", 0, "42"},
	}
	for _, tc := range cases {
		v, _ := new(big.Int).SetString(tc.value, 10)
		if got := FormatUnits(v, tc.decimals); got != tc.want {
			t.Fatalf("FormatUnits(%s, %d) = %s, want %s", tc.value, tc.decimals, got, tc.want)
		}
	}
}
