// Package contracts lists the protocol's deployed contracts.
package contracts

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Contract is a named deployment.
type Contract struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
}

var descriptions = map[string]string{
	"safeEngine":             "Core accounting of safes, collateral and debt.",
	"oracleRelayer":          "Pushes collateral prices and tracks the redemption price.",
	"taxCollector":           "Accrues stability fees on each collateral type.",
	"liquidationEngine":      "Starts collateral auctions for unsafe safes.",
	"accountingEngine":       "Settles system debt and surplus, triggering debt and surplus auctions.",
	"coinJoin":               "Mints and burns HAI against internal coin balances.",
	"systemCoin":             "The HAI token.",
	"protocolToken":          "The KITE governance token.",
	"debtAuctionHouse":       "Sells KITE for HAI to cover bad debt.",
	"surplusAuctionHouse":    "Sells surplus HAI for KITE.",
	"stabilityFeeTreasury":   "Holds HAI used to fund protocol operations.",
	"globalSettlement":       "Shuts the system down and lets holders redeem collateral.",
	"pidController":          "Computes the redemption rate from the market price deviation.",
	"pidRateSetter":          "Feeds the controller output to the oracle relayer.",
	"proxyRegistry":          "Deploys user proxies.",
	"safeManager":            "Lets users open and manage safes through their proxy.",
	"proxyActions":           "Bundled actions executed through a user proxy.",
	"collateralAuctionHouse": "Sells liquidated collateral for HAI.",
}

// Description returns the description for a contract name, if known.
func Description(name string) string {
	return descriptions[name]
}

// List returns the contracts with a valid address, sorted by name.
// Addresses are returned in checksum form.
func List(addresses map[string]string) []Contract {
	out := make([]Contract, 0, len(addresses))
	for name, address := range addresses {
		address = strings.TrimSpace(address)
		if address == "" || !common.IsHexAddress(address) {
			continue
		}
		out = append(out, Contract{
			Name:        name,
			Address:     common.HexToAddress(address).Hex(),
			Description: descriptions[name],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
