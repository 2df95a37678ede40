package lending

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/repository"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

func amt(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func testScope(t *testing.T) model.Scope {
	t.Helper()
	scope, err := model.NewScope("user-1", "conv-1")
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	return scope
}

func newMachine() *Machine {
	return New(repository.NewMemory(), log.NewNop())
}

func TestUpdateCollectsInOrder(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	// "deposit 100 USDC" folds deposit -> supply, network still missing.
	res, err := m.Update(ctx, scope, extract.Params{
		Action:    "deposit",
		Amount:    amt("100"),
		FromToken: "USDC",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "lending_intent_pending" {
		t.Errorf("unexpected event %s", res.Event)
	}
	if len(res.MissingFields) != 1 || res.MissingFields[0] != FieldNetwork {
		t.Errorf("expected missing [network], got %v", res.MissingFields)
	}
	intent := res.Intent.(*Intent)
	if intent.Action != "supply" {
		t.Errorf("deposit must fold to supply, got %q", intent.Action)
	}
	if len(res.Choices) == 0 {
		t.Error("expected lending network choices")
	}

	res, err = m.Update(ctx, scope, extract.Params{FromNetwork: "avalanche"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "lending_intent_ready" || res.Stage != workflow.StageReady {
		t.Fatalf("unexpected event/stage %s/%s", res.Event, res.Stage)
	}
	if res.Metadata["action"] != "supply" || res.Metadata["asset"] != "USDC" {
		t.Errorf("unexpected metadata %v", res.Metadata)
	}
}

func TestMissingFieldOrder(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	res, err := m.Update(ctx, scope, extract.Params{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := []string{FieldAction, FieldNetwork, FieldAsset, FieldAmount}
	if len(res.MissingFields) != len(want) {
		t.Fatalf("expected %v, got %v", want, res.MissingFields)
	}
	for i := range want {
		if res.MissingFields[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, res.MissingFields)
		}
	}
	if res.NextField != FieldAction {
		t.Errorf("next field must be action, got %q", res.NextField)
	}
}

func TestNetworkChangeClearsUnsupportedAsset(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	// AVAX has a market on avalanche but not on base.
	if _, err := m.Update(ctx, scope, extract.Params{FromNetwork: "avalanche", FromToken: "AVAX"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	res, err := m.Update(ctx, scope, extract.Params{FromNetwork: "base"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	intent := res.Intent.(*Intent)
	if intent.Asset != "" {
		t.Errorf("asset must clear when the new network has no market for it, got %q", intent.Asset)
	}
}

func TestRejectedInput(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)

	t.Run("unknown action", func(t *testing.T) {
		res, err := newMachine().Update(ctx, scope, extract.Params{Action: "teleport"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if res.Error == "" {
			t.Error("expected action error")
		}
	})

	t.Run("network without lending market", func(t *testing.T) {
		res, err := newMachine().Update(ctx, scope, extract.Params{FromNetwork: "optimism"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if res.Error == "" {
			t.Error("expected no-market error")
		}
	})

	t.Run("asset without market on chosen network", func(t *testing.T) {
		m := newMachine()
		if _, err := m.Update(ctx, scope, extract.Params{FromNetwork: "base"}); err != nil {
			t.Fatalf("update: %v", err)
		}
		res, err := m.Update(ctx, scope, extract.Params{FromToken: "WBTC"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if res.Error == "" {
			t.Error("expected asset error")
		}
	})
}
