package dca

import (
	"testing"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/pkg/datemath"
)

func TestDetectCadence(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"buy ETH every week", "weekly"},
		{"every two weeks please", "biweekly"},
		{"every 2 weeks", "biweekly"},
		{"a monthly plan", "monthly"},
		{"comprar toda semana", "weekly"},
		{"todo dia", "daily"},
		{"no cadence here", ""},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			if got := detectCadence(tc.text); got != tc.want {
				t.Errorf("detectCadence(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectStart(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("parser: %v", err)
	}
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("iso date", func(t *testing.T) {
		if got := detectStart("start on 2026-09-15 please", parser, base); got != "2026-09-15" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("relative phrase", func(t *testing.T) {
		if got := detectStart("starting tomorrow", parser, base); got != "2026-08-31" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("next weekday", func(t *testing.T) {
		// Base is a Sunday; next monday is the 31st.
		if got := detectStart("starting next monday", parser, base); got != "2026-08-31" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no date", func(t *testing.T) {
		if got := detectStart("buy ETH weekly", parser, base); got != "" {
			t.Errorf("got %q", got)
		}
	})
}

func TestDetectIterations(t *testing.T) {
	if got := detectIterations("run it for 12 weeks"); got != 12 {
		t.Errorf("got %d", got)
	}
	if got := detectIterations("every 2 weeks"); got != 0 {
		t.Errorf("cadence phrasing must not count as iterations, got %d", got)
	}
	if got := detectIterations("por 6 vezes"); got != 6 {
		t.Errorf("got %d", got)
	}
}

func TestDetectVenueAndTokens(t *testing.T) {
	if got := detectVenue("execute it on uniswap"); got != "uniswap" {
		t.Errorf("got %q", got)
	}
	if got := detectVenue("somewhere else"); got != "" {
		t.Errorf("got %q", got)
	}

	tokens := detectTokens("buy ETH and bitcoin with USDC, more ETH")
	want := []string{"ETH", "WBTC", "USDC"}
	if len(tokens) != len(want) {
		t.Fatalf("got %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("got %v, want %v", tokens, want)
		}
	}
}

func TestConfirmationWords(t *testing.T) {
	if !isConfirmation("Yes") || !isConfirmation("confirmo") || !isConfirmation("go ahead and do it") {
		t.Error("expected confirmations to match")
	}
	if isConfirmation("nothing of the sort") {
		t.Error("unexpected confirmation match")
	}
	if !isDenial("no, wait") || !isDenial("change it") {
		t.Error("expected denials to match")
	}
	// "no" must match as a word, not inside other words.
	if isDenial("nothing") {
		t.Error("substring must not match denial")
	}
}
