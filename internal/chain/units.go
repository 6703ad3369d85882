package chain

import (
	"math/big"
	"strings"
)

// FormatUnits renders a raw token amount in token units, trimming
// trailing zeros the way ethers' formatUnits does (keeping one decimal).
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0.0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	text := new(big.Rat).SetFrac(abs, denom).FloatString(int(decimals))

	text = strings.TrimRight(text, "0")
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	if sign < 0 {
		return "-" + text
	}
	return text
}
