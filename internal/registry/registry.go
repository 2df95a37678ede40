// Package registry holds the static network, token and venue tables the
// slot-filling workflows validate against. The tables are built once and
// read-only afterwards, so lookups are safe for concurrent use.
package registry

import "strings"

// Networks supported for swaps and transfers.
var networks = []string{
	"ethereum",
	"avalanche",
	"base",
	"arbitrum",
	"optimism",
	"polygon",
}

var networkAliases = map[string]string{
	"eth":       "ethereum",
	"mainnet":   "ethereum",
	"avax":      "avalanche",
	"arb":       "arbitrum",
	"op":        "optimism",
	"matic":     "polygon",
	"pol":       "polygon",
	"basechain": "base",
}

// Tokens tradable per network.
var networkTokens = map[string][]string{
	"ethereum":  {"ETH", "WETH", "USDC", "USDT", "DAI", "WBTC", "LINK", "AAVE", "UNI", "STETH"},
	"avalanche": {"AVAX", "WAVAX", "USDC", "USDT", "DAI", "WBTC", "LINK", "JOE"},
	"base":      {"ETH", "WETH", "USDC", "DAI", "CBETH"},
	"arbitrum":  {"ETH", "WETH", "USDC", "USDT", "DAI", "WBTC", "ARB", "GMX"},
	"optimism":  {"ETH", "WETH", "USDC", "USDT", "DAI", "WBTC", "OP"},
	"polygon":   {"POL", "WETH", "USDC", "USDT", "DAI", "WBTC", "LINK"},
}

var tokenAliases = map[string]string{
	"bitcoin":  "WBTC",
	"btc":      "WBTC",
	"ether":    "ETH",
	"tether":   "USDT",
	"usd coin": "USDC",
	"steth":    "STETH",
}

// Cross-chain routes supported by the bridge executor, beyond same-network
// swaps (which are always supported when both sides share a network).
var bridgeRoutes = map[string][]string{
	"ethereum":  {"avalanche", "base", "arbitrum", "optimism", "polygon"},
	"avalanche": {"ethereum"},
	"base":      {"ethereum", "arbitrum", "optimism"},
	"arbitrum":  {"ethereum", "base", "optimism"},
	"optimism":  {"ethereum", "base", "arbitrum"},
	"polygon":   {"ethereum"},
}

// Lending markets per network.
var lendingMarkets = map[string][]string{
	"ethereum":  {"USDC", "USDT", "DAI", "ETH", "WBTC"},
	"avalanche": {"USDC", "USDT", "DAI", "AVAX", "WBTC"},
	"base":      {"USDC", "ETH"},
	"arbitrum":  {"USDC", "USDT", "DAI", "ETH", "WBTC"},
}

// Staking is fixed to Lido on Ethereum mainnet.
const (
	StakingVenue    = "lido"
	StakingNetwork  = "ethereum"
	StakingChainID  = 1
	StakingInToken  = "ETH"
	StakingOutToken = "STETH"
)

// Venues available for recurring-purchase execution.
var dcaVenues = []string{"uniswap", "traderjoe", "aerodrome"}

// Cadences accepted for recurring purchases.
var dcaCadences = []string{"daily", "weekly", "biweekly", "monthly"}

// NormalizeNetwork resolves a user-supplied network name to its canonical
// lowercase form. Returns false when the network is unknown.
func NormalizeNetwork(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := networkAliases[n]; ok {
		n = alias
	}
	for _, known := range networks {
		if n == known {
			return n, true
		}
	}
	return "", false
}

// NormalizeToken resolves a user-supplied token symbol to its canonical
// uppercase form. Returns false when the token is not known on any network.
func NormalizeToken(symbol string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if alias, ok := tokenAliases[s]; ok {
		s = strings.ToLower(alias)
	}
	upper := strings.ToUpper(s)
	for _, tokens := range networkTokens {
		for _, t := range tokens {
			if t == upper {
				return upper, true
			}
		}
	}
	return "", false
}

// Networks returns the supported network names.
func Networks() []string {
	out := make([]string, len(networks))
	copy(out, networks)
	return out
}

// TokensFor returns the token symbols tradable on the given network.
func TokensFor(network string) []string {
	tokens, ok := networkTokens[network]
	if !ok {
		return nil
	}
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}

// SupportsToken reports whether the token is tradable on the network.
func SupportsToken(network, token string) bool {
	for _, t := range networkTokens[network] {
		if t == token {
			return true
		}
	}
	return false
}

// RouteSupported reports whether the executor can move value from
// fromNetwork to toNetwork. Same-network swaps are always supported.
func RouteSupported(fromNetwork, toNetwork string) bool {
	if fromNetwork == toNetwork {
		_, ok := networkTokens[fromNetwork]
		return ok
	}
	for _, dst := range bridgeRoutes[fromNetwork] {
		if dst == toNetwork {
			return true
		}
	}
	return false
}

// LendingNetworks returns networks with an active lending market.
func LendingNetworks() []string {
	out := make([]string, 0, len(lendingMarkets))
	for _, n := range networks {
		if _, ok := lendingMarkets[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// LendingAssets returns the assets usable in the network's lending market.
func LendingAssets(network string) []string {
	assets, ok := lendingMarkets[network]
	if !ok {
		return nil
	}
	out := make([]string, len(assets))
	copy(out, assets)
	return out
}

// SupportsLendingAsset reports whether the asset has a lending market on
// the network.
func SupportsLendingAsset(network, asset string) bool {
	for _, a := range lendingMarkets[network] {
		if a == asset {
			return true
		}
	}
	return false
}

// DCAVenues returns venues available for recurring purchases.
func DCAVenues() []string {
	out := make([]string, len(dcaVenues))
	copy(out, dcaVenues)
	return out
}

// SupportsDCAVenue reports whether the venue can execute recurring buys.
func SupportsDCAVenue(venue string) bool {
	v := strings.ToLower(strings.TrimSpace(venue))
	for _, known := range dcaVenues {
		if v == known {
			return true
		}
	}
	return false
}

// DCACadences returns the accepted recurring-purchase cadences.
func DCACadences() []string {
	out := make([]string, len(dcaCadences))
	copy(out, dcaCadences)
	return out
}

// NormalizeCadence resolves a cadence word to its canonical form.
func NormalizeCadence(cadence string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(cadence))
	switch c {
	case "every day", "diario", "diária":
		c = "daily"
	case "every week", "semanal":
		c = "weekly"
	case "every two weeks", "fortnightly", "quinzenal":
		c = "biweekly"
	case "every month", "mensal":
		c = "monthly"
	}
	for _, known := range dcaCadences {
		if c == known {
			return c, true
		}
	}
	return "", false
}
