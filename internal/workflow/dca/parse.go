package dca

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/registry"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/datemath"
)

// cadencePhrases is ordered; biweekly forms come before the weekly forms
// they contain.
var cadencePhrases = []struct {
	phrase  string
	cadence string
}{
	{"every two weeks", "biweekly"},
	{"every 2 weeks", "biweekly"},
	{"biweekly", "biweekly"},
	{"fortnightly", "biweekly"},
	{"quinzenal", "biweekly"},
	{"every day", "daily"},
	{"daily", "daily"},
	{"todo dia", "daily"},
	{"every week", "weekly"},
	{"weekly", "weekly"},
	{"toda semana", "weekly"},
	{"semanal", "weekly"},
	{"every month", "monthly"},
	{"monthly", "monthly"},
	{"todo mês", "monthly"},
	{"mensal", "monthly"},
}

func detectCadence(text string) string {
	t := strings.ToLower(text)
	for _, entry := range cadencePhrases {
		if strings.Contains(t, entry.phrase) {
			if cadence, ok := registry.NormalizeCadence(entry.cadence); ok {
				return cadence
			}
		}
	}
	return ""
}

var isoDateRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

var startPhraseRe = regexp.MustCompile(`(?i)\b(?:starting|start(?:ing)? on|a partir de|beginning)\s+([a-z0-9 \-ãç]{1,40})`)

// detectStart finds a start date in the text and returns it as an ISO day.
func detectStart(text string, parser *datemath.Parser, now time.Time) string {
	if m := isoDateRe.FindString(text); m != "" {
		if t, err := parser.Parse(m, now); err == nil {
			return t.Format("2006-01-02")
		}
	}

	m := startPhraseRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	// Try progressively shorter word windows of the captured tail.
	words := strings.Fields(strings.ToLower(strings.TrimSpace(m[1])))
	for n := min(4, len(words)); n > 0; n-- {
		candidate := strings.Join(words[:n], " ")
		if t, err := parser.Parse(candidate, now); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

var iterationsRe = regexp.MustCompile(`(?i)\b(?:for|por)\s+(\d{1,3})\s*(?:times|cycles|purchases|iterations|weeks|months|vezes|semanas|meses)\b`)

func detectIterations(text string) int {
	m := iterationsRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func detectVenue(text string) string {
	t := strings.ToLower(text)
	for _, venue := range registry.DCAVenues() {
		if strings.Contains(t, venue) {
			return venue
		}
	}
	return ""
}

// detectTokens returns the known token symbols mentioned, in order of
// appearance, deduplicated.
func detectTokens(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?")
		token, ok := registry.NormalizeToken(word)
		if !ok || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

func isSpendToken(token string) bool {
	for _, t := range spendTokens {
		if token == t {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for _, w := range strings.Fields(text) {
		if strings.Trim(w, ".,!?") == word {
			return true
		}
	}
	return false
}

func matchesAny(text string, words []string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(t, w) {
				return true
			}
		} else if containsWord(t, w) {
			return true
		}
	}
	return false
}

func isConfirmation(text string) bool {
	return matchesAny(text, confirmWords)
}

func isDenial(text string) bool {
	return matchesAny(text, denyWords)
}
