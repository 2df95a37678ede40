// Package extract performs pattern-based best-effort field extraction from
// raw user text. No model calls, no I/O; a partial match always beats no
// match because downstream slot filling tolerates partial data.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/registry"
)

const (
	amountPat  = `(\d+(?:[.,]\d+)?)`
	tokenPat   = `([a-zA-Z]{2,10})`
	networkPat = `(ethereum|eth|mainnet|avalanche|avax|base|arbitrum|arb|optimism|op|polygon|matic|pol)`
)

var (
	// "swap 10 USDC from ethereum to AVAX on avalanche"
	crossChainRe = regexp.MustCompile(`(?i)(?:swap|trade|exchange|bridge|troque|trocar)\s+` + amountPat + `\s*` + tokenPat +
		`\s+(?:from|de)\s+` + networkPat + `\s+(?:for|to|por|para)\s+` + tokenPat +
		`\s+(?:on|to|na|no|em|para)\s+` + networkPat)

	// "swap 10 USDC for AVAX [on ethereum]"
	swapRe = regexp.MustCompile(`(?i)(?:swap|trade|exchange|convert|troque|trocar)\s+` + amountPat + `\s*` + tokenPat +
		`\s+(?:for|to|into|por|para)\s+` + tokenPat)

	// "supply 100 USDC [on avalanche]", "borrow 50 DAI"
	lendingRe = regexp.MustCompile(`(?i)\b(supply|deposit|lend|withdraw|borrow|repay|depositar|sacar|emprestar)\s+` +
		amountPat + `\s*` + tokenPat)

	// "stake 2 eth", "unstake", "claim rewards"
	stakingRe = regexp.MustCompile(`(?i)\b(stake|unstake|restake|claim)\b(?:\s+` + amountPat + `)?`)

	// bare "10 USDC"
	amountTokenRe = regexp.MustCompile(`(?i)\b` + amountPat + `\s*` + tokenPat + `\b`)

	// "on avalanche", "via base", "na polygon"
	networkMentionRe = regexp.MustCompile(`(?i)\b(?:on|via|in|na|no|em)\s+` + networkPat + `\b`)

	bareNetworkRe = regexp.MustCompile(`(?i)\b` + networkPat + `\b`)

	lendingVerbRe = regexp.MustCompile(`(?i)\b(supply|deposit|lend|withdraw|borrow|repay)\b`)
)

// actionSynonyms folds verbs into the canonical lending vocabulary.
var actionSynonyms = map[string]string{
	"deposit":   "supply",
	"lend":      "supply",
	"depositar": "supply",
	"emprestar": "supply",
	"sacar":     "withdraw",
	"restake":   "stake",
}

// Extract scans text for workflow fields. It is pure and deterministic and
// returns an all-empty record when nothing matches.
func Extract(text string, hint Hint) Params {
	text = strings.TrimSpace(text)
	if text == "" {
		return Params{}
	}

	var p Params

	switch hint {
	case HintLending:
		p = extractLending(text)
	case HintStaking:
		p = extractStaking(text)
	default:
		p = extractSwap(text)
	}

	if p.IsEmpty() {
		// Hint-independent fallbacks still recover partial data.
		if m := amountTokenRe.FindStringSubmatch(text); m != nil {
			p.Amount = parseAmount(m[1])
			p.FromToken = normalizeToken(m[2])
		}
	}

	if p.FromNetwork == "" {
		if net := findNetworkMention(text); net != "" {
			p.FromNetwork = net
		}
	}

	// A single network mention on a swap means same-chain on both sides.
	if (hint == HintSwap || hint == HintNone) && p.FromNetwork != "" && p.ToNetwork == "" {
		if !mentionsSecondNetwork(text, p.FromNetwork) {
			p.ToNetwork = p.FromNetwork
		}
	}

	return p
}

func extractSwap(text string) Params {
	if m := crossChainRe.FindStringSubmatch(text); m != nil {
		fromNet, _ := registry.NormalizeNetwork(m[3])
		toNet, _ := registry.NormalizeNetwork(m[5])
		return Params{
			Amount:      parseAmount(m[1]),
			FromToken:   normalizeToken(m[2]),
			FromNetwork: fromNet,
			ToToken:     normalizeToken(m[4]),
			ToNetwork:   toNet,
		}
	}

	if m := swapRe.FindStringSubmatch(text); m != nil {
		return Params{
			Amount:    parseAmount(m[1]),
			FromToken: normalizeToken(m[2]),
			ToToken:   normalizeToken(m[3]),
		}
	}

	return Params{}
}

func extractLending(text string) Params {
	if m := lendingRe.FindStringSubmatch(text); m != nil {
		return Params{
			Action:    normalizeAction(m[1]),
			Amount:    parseAmount(m[2]),
			FromToken: normalizeToken(m[3]),
		}
	}

	// Verb without amount still fixes the action.
	if m := lendingVerbRe.FindStringSubmatch(text); m != nil {
		return Params{Action: normalizeAction(m[1])}
	}

	return Params{}
}

func extractStaking(text string) Params {
	if m := stakingRe.FindStringSubmatch(text); m != nil {
		p := Params{Action: normalizeAction(m[1])}
		if m[2] != "" {
			p.Amount = parseAmount(m[2])
		}
		return p
	}
	return Params{}
}

func findNetworkMention(text string) string {
	if m := networkMentionRe.FindStringSubmatch(text); m != nil {
		if net, ok := registry.NormalizeNetwork(m[1]); ok {
			return net
		}
	}
	return ""
}

func mentionsSecondNetwork(text, first string) bool {
	for _, m := range bareNetworkRe.FindAllStringSubmatch(text, -1) {
		if net, ok := registry.NormalizeNetwork(m[1]); ok && net != first {
			return true
		}
	}
	return false
}

func parseAmount(raw string) *decimal.Decimal {
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

func normalizeToken(raw string) string {
	if tok, ok := registry.NormalizeToken(raw); ok {
		return tok
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

func normalizeAction(raw string) string {
	a := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := actionSynonyms[a]; ok {
		return canonical
	}
	return a
}
