package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractSwap(t *testing.T) {
	t.Run("simple swap", func(t *testing.T) {
		p := Extract("swap 10 USDC for AVAX", HintSwap)
		if p.Amount == nil || !p.Amount.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected amount 10, got %v", p.Amount)
		}
		if p.FromToken != "USDC" || p.ToToken != "AVAX" {
			t.Errorf("unexpected token pair %q -> %q", p.FromToken, p.ToToken)
		}
		if p.FromNetwork != "" {
			t.Errorf("expected no network, got %q", p.FromNetwork)
		}
	})

	t.Run("same-chain network default", func(t *testing.T) {
		p := Extract("swap 10 USDC for AVAX on avalanche", HintSwap)
		if p.FromNetwork != "avalanche" || p.ToNetwork != "avalanche" {
			t.Errorf("expected same-chain avalanche, got %q -> %q", p.FromNetwork, p.ToNetwork)
		}
	})

	t.Run("cross-chain", func(t *testing.T) {
		p := Extract("swap 5 WETH from ethereum to USDC on arbitrum", HintSwap)
		if p.FromNetwork != "ethereum" || p.ToNetwork != "arbitrum" {
			t.Errorf("unexpected networks %q -> %q", p.FromNetwork, p.ToNetwork)
		}
		if p.FromToken != "WETH" || p.ToToken != "USDC" {
			t.Errorf("unexpected tokens %q -> %q", p.FromToken, p.ToToken)
		}
	})

	t.Run("portuguese", func(t *testing.T) {
		p := Extract("trocar 25 USDT por ETH na ethereum", HintSwap)
		if p.FromToken != "USDT" || p.ToToken != "ETH" {
			t.Errorf("unexpected tokens %q -> %q", p.FromToken, p.ToToken)
		}
		if p.FromNetwork != "ethereum" {
			t.Errorf("expected ethereum, got %q", p.FromNetwork)
		}
	})

	t.Run("decimal comma", func(t *testing.T) {
		p := Extract("swap 0,5 ETH for USDC", HintSwap)
		if p.Amount == nil || p.Amount.String() != "0.5" {
			t.Errorf("expected amount 0.5, got %v", p.Amount)
		}
	})
}

func TestExtractLending(t *testing.T) {
	t.Run("deposit folds to supply", func(t *testing.T) {
		p := Extract("deposit 100 USDC on avalanche", HintLending)
		if p.Action != "supply" {
			t.Errorf("expected supply, got %q", p.Action)
		}
		if p.Amount == nil || !p.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected amount 100, got %v", p.Amount)
		}
		if p.FromToken != "USDC" || p.FromNetwork != "avalanche" {
			t.Errorf("unexpected asset/network %q/%q", p.FromToken, p.FromNetwork)
		}
	})

	t.Run("verb only", func(t *testing.T) {
		p := Extract("I want to borrow something", HintLending)
		if p.Action != "borrow" {
			t.Errorf("expected borrow, got %q", p.Action)
		}
		if p.Amount != nil {
			t.Errorf("expected no amount, got %v", p.Amount)
		}
	})
}

func TestExtractStaking(t *testing.T) {
	t.Run("stake with amount", func(t *testing.T) {
		p := Extract("stake 2 eth with lido", HintStaking)
		if p.Action != "stake" {
			t.Errorf("expected stake, got %q", p.Action)
		}
		if p.Amount == nil || !p.Amount.Equal(decimal.NewFromInt(2)) {
			t.Errorf("expected amount 2, got %v", p.Amount)
		}
	})

	t.Run("unstake bare", func(t *testing.T) {
		p := Extract("unstake everything please", HintStaking)
		if p.Action != "unstake" || p.Amount != nil {
			t.Errorf("unexpected params %+v", p)
		}
	})
}

func TestExtractFallbacks(t *testing.T) {
	t.Run("bare amount token", func(t *testing.T) {
		p := Extract("10 USDC", HintNone)
		if p.Amount == nil || p.FromToken != "USDC" {
			t.Errorf("unexpected params %+v", p)
		}
	})

	t.Run("no match is empty not error", func(t *testing.T) {
		p := Extract("what is the weather like", HintNone)
		if !p.IsEmpty() {
			t.Errorf("expected empty params, got %+v", p)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if !Extract("   ", HintSwap).IsEmpty() {
			t.Error("expected empty params for blank input")
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := Extract("swap 10 USDC for AVAX on avalanche", HintSwap)
		b := Extract("swap 10 USDC for AVAX on avalanche", HintSwap)
		if a.FromToken != b.FromToken || a.ToNetwork != b.ToNetwork {
			t.Error("extraction must be deterministic")
		}
	})
}
