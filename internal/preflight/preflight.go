// Package preflight validates pre-extracted fields before any expensive
// downstream call. It only checks fields extraction actually found and
// returns human-readable messages that are surfaced verbatim to the user.
package preflight

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/registry"
)

// Safety ceilings per workflow kind. Amounts above these are almost
// certainly typos or unit confusion and must not reach an executor.
var amountCeilings = map[model.WorkflowKind]decimal.Decimal{
	model.KindSwap:    decimal.NewFromInt(10_000_000),
	model.KindLending: decimal.NewFromInt(100_000_000),
	model.KindStaking: decimal.NewFromInt(1_000_000),
	model.KindDCA:     decimal.NewFromInt(1_000_000),
}

var allowedActions = map[model.WorkflowKind][]string{
	model.KindLending: {"supply", "withdraw", "borrow", "repay"},
	model.KindStaking: {"stake", "unstake", "claim"},
}

// actionSynonyms folds common verbs into the canonical vocabulary before
// the whitelist check.
var actionSynonyms = map[string]string{
	"deposit": "supply",
	"lend":    "supply",
}

// Validate checks the fields present in p against the kind's constraints.
// An empty result means nothing objectionable was found; it never demands
// fields extraction did not see.
func Validate(kind model.WorkflowKind, p extract.Params) []string {
	var errs []string

	if p.Amount != nil {
		errs = append(errs, validateAmount(kind, *p.Amount)...)
	}

	if p.Action != "" {
		errs = append(errs, validateAction(kind, p.Action)...)
	}

	if p.FromNetwork != "" {
		if _, ok := registry.NormalizeNetwork(p.FromNetwork); !ok {
			errs = append(errs, fmt.Sprintf("Network %q is not supported.", p.FromNetwork))
		}
	}
	if p.ToNetwork != "" && p.ToNetwork != p.FromNetwork {
		if _, ok := registry.NormalizeNetwork(p.ToNetwork); !ok {
			errs = append(errs, fmt.Sprintf("Network %q is not supported.", p.ToNetwork))
		}
	}

	if kind == model.KindSwap {
		errs = append(errs, validateSwapRoute(p)...)
	}

	return errs
}

func validateAmount(kind model.WorkflowKind, amount decimal.Decimal) []string {
	if amount.LessThanOrEqual(decimal.Zero) {
		return []string{"Amount must be greater than zero."}
	}
	if ceiling, ok := amountCeilings[kind]; ok && amount.GreaterThan(ceiling) {
		return []string{fmt.Sprintf("Amount %s exceeds the safety limit of %s.", amount.String(), ceiling.String())}
	}
	return nil
}

func validateAction(kind model.WorkflowKind, action string) []string {
	allowed, ok := allowedActions[kind]
	if !ok {
		return nil
	}

	a := strings.ToLower(strings.TrimSpace(action))
	if canonical, ok := actionSynonyms[a]; ok {
		a = canonical
	}

	for _, v := range allowed {
		if a == v {
			return nil
		}
	}
	return []string{fmt.Sprintf("Action %q is not supported here. Try one of: %s.", action, strings.Join(allowed, ", "))}
}

func validateSwapRoute(p extract.Params) []string {
	var errs []string

	if p.FromToken != "" && p.FromToken == p.ToToken &&
		p.FromNetwork != "" && p.FromNetwork == p.ToNetwork {
		errs = append(errs, "Source and destination are identical; nothing to swap.")
	}

	fromNet, fromOK := registry.NormalizeNetwork(p.FromNetwork)
	toNet, toOK := registry.NormalizeNetwork(p.ToNetwork)
	if fromOK && toOK && !registry.RouteSupported(fromNet, toNet) {
		errs = append(errs, fmt.Sprintf("Swaps from %s to %s are not supported yet.", fromNet, toNet))
	}

	return errs
}
