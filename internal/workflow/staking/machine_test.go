package staking

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

func TestStakeFlow(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	res, err := m.Update(ctx, scope, extract.Params{Action: "stake"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "staking_intent_pending" {
		t.Errorf("unexpected event %s", res.Event)
	}
	if len(res.MissingFields) != 1 || res.MissingFields[0] != FieldAmount {
		t.Errorf("expected missing [amount], got %v", res.MissingFields)
	}

	res, err = m.Update(ctx, scope, extract.Params{Amount: amt("2")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "staking_intent_ready" || res.Stage != workflow.StageReady {
		t.Fatalf("unexpected event/stage %s/%s", res.Event, res.Stage)
	}
	if res.Metadata["venue"] != "lido" || res.Metadata["network"] != "ethereum" {
		t.Errorf("unexpected venue/network metadata %v", res.Metadata)
	}
	if res.Metadata["in_token"] != "ETH" || res.Metadata["out_token"] != "STETH" {
		t.Errorf("stake must derive ETH -> STETH, got %v", res.Metadata)
	}
}

func TestUnstakeDerivesTokens(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	res, err := m.Update(ctx, scope, extract.Params{Action: "unstake", Amount: amt("1.5")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "staking_intent_ready" {
		t.Fatalf("unexpected event %s", res.Event)
	}
	if res.Metadata["in_token"] != "STETH" || res.Metadata["out_token"] != "ETH" {
		t.Errorf("unstake must derive STETH -> ETH, got %v", res.Metadata)
	}
}

func TestClaimNeedsNoAmount(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	res, err := m.Update(ctx, scope, extract.Params{Action: "claim"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "staking_intent_ready" {
		t.Fatalf("claim must complete without amount, got %s", res.Event)
	}
	if _, ok := res.Metadata["amount"]; ok {
		t.Error("claim metadata must not carry an amount")
	}
}

func TestRestakeFoldsToStake(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine()

	res, err := m.Update(ctx, scope, extract.Params{Action: "restake"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Intent.(*Intent).Action != ActionStake {
		t.Errorf("restake must fold to stake, got %q", res.Intent.(*Intent).Action)
	}
}

func TestRejectedInput(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)

	t.Run("unknown action", func(t *testing.T) {
		res, err := newMachine().Update(ctx, scope, extract.Params{Action: "borrow"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if res.Error == "" {
			t.Error("expected action error")
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		res, err := newMachine().Update(ctx, scope, extract.Params{Action: "stake", Amount: amt("-5")})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if res.Error == "" {
			t.Error("expected amount error")
		}
	})
}
