package auction

import "strings"

var tokenMap = map[string]string{
	"PROTOCOL_TOKEN": "KITE",
	"COIN":           "HAI",
}

// TokenSymbol maps subgraph token identifiers to display symbols.
func TokenSymbol(token string) string {
	if symbol, ok := tokenMap[token]; ok {
		return symbol
	}
	return token
}

func equalAddress(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}
