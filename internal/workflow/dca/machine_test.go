package dca

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/repository"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/datemath"
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

func newMachine(t *testing.T) *Machine {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("parser: %v", err)
	}
	return New(repository.NewMemory(), KeywordRetriever{}, parser, log.NewNop())
}

func TestFullPlanFlow(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine(t)

	// Consulting: target token found, strategy recommended, spend token missing.
	res, err := m.Update(ctx, scope, "I want to dollar cost average into bitcoin", extract.Params{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "dca_intent_pending" || res.Stage != workflow.StageConsulting {
		t.Fatalf("unexpected event/stage %s/%s", res.Event, res.Stage)
	}
	intent := res.Intent.(*Intent)
	if intent.ToToken != "WBTC" {
		t.Errorf("bitcoin must resolve to WBTC, got %q", intent.ToToken)
	}
	if intent.StrategyID == "" || intent.Venue == "" || intent.SlippageBps == 0 {
		t.Errorf("strategy defaults must be filled, got %+v", intent)
	}
	if res.NextField != FieldFromToken {
		t.Errorf("expected from_token next, got %q", res.NextField)
	}

	// Spend token advances to recommending.
	res, err = m.Update(ctx, scope, "use USDC", extract.Params{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Stage != workflow.StageRecommending {
		t.Fatalf("expected recommending, got %s", res.Stage)
	}

	// Schedule details advance to confirming.
	res, err = m.Update(ctx, scope, "start 2026-09-15 for 12 weeks", extract.Params{Amount: amt("50")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Stage != workflow.StageConfirming {
		t.Fatalf("expected confirming, got %s", res.Stage)
	}
	if len(res.MissingFields) != 1 || res.MissingFields[0] != FieldConfirm {
		t.Errorf("expected missing [confirmation], got %v", res.MissingFields)
	}
	if !strings.Contains(res.PendingQuestion, "Plan:") {
		t.Errorf("confirmation question must carry the plan summary, got %q", res.PendingQuestion)
	}

	awaiting, err := m.Awaiting(ctx, scope)
	if err != nil {
		t.Fatalf("awaiting: %v", err)
	}
	if !awaiting {
		t.Error("confirming stage must flag awaiting confirmation")
	}

	// Explicit confirmation completes the plan.
	res, err = m.Update(ctx, scope, "yes", extract.Params{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Event != "dca_intent_ready" || res.Stage != workflow.StageReady {
		t.Fatalf("unexpected event/stage %s/%s", res.Event, res.Stage)
	}
	if res.Metadata["start_on"] != "2026-09-15" || res.Metadata["per_cycle_amount"] != "50" {
		t.Errorf("unexpected metadata %v", res.Metadata)
	}
	if rrule := res.Metadata["rrule"]; rrule != "FREQ=WEEKLY;COUNT=12" {
		t.Errorf("unexpected rrule %v", rrule)
	}

	active, err := m.Active(ctx, scope)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active {
		t.Error("intent must be deleted at terminal stage")
	}
	if len(res.History) != 1 || res.History[0].Status != workflow.StatusCompleted {
		t.Errorf("unexpected history %v", res.History)
	}
}

func TestDenialRevisesPlan(t *testing.T) {
	ctx := context.Background()
	scope := testScope(t)
	m := newMachine(t)

	steps := []struct {
		text   string
		params extract.Params
	}{
		{"buy ETH weekly with USDC", extract.Params{}},
		{"start 2026-09-01 for 8 weeks", extract.Params{Amount: amt("25")}},
	}
	var res workflow.Result
	var err error
	for _, s := range steps {
		if res, err = m.Update(ctx, scope, s.text, s.params); err != nil {
			t.Fatalf("update %q: %v", s.text, err)
		}
	}
	if res.Stage != workflow.StageConfirming {
		t.Fatalf("expected confirming, got %s", res.Stage)
	}

	// Denying moves backward; the revision is applied and the plan is
	// re-proposed.
	res, err = m.Update(ctx, scope, "no, make it monthly", extract.Params{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Stage != workflow.StageConfirming {
		t.Fatalf("revised plan must come back for confirmation, got %s", res.Stage)
	}
	if res.Intent.(*Intent).Cadence != "monthly" {
		t.Errorf("cadence revision not applied: %+v", res.Intent)
	}
	if res.Intent.(*Intent).Confirmed {
		t.Error("denial must not leave the plan confirmed")
	}
}

func TestAdvanceStage(t *testing.T) {
	t.Run("ready requires confirmation", func(t *testing.T) {
		i := &Intent{Stage: workflow.StageConfirming}
		if err := i.AdvanceStage(workflow.StageReady); err == nil {
			t.Error("expected rejection without confirmation")
		}
		i.Confirmed = true
		if err := i.AdvanceStage(workflow.StageReady); err != nil {
			t.Errorf("confirmed advance must succeed: %v", err)
		}
	})

	t.Run("same stage is a no-op", func(t *testing.T) {
		i := &Intent{Stage: workflow.StageConsulting}
		if err := i.AdvanceStage(workflow.StageConsulting); err != nil {
			t.Errorf("no-op advance failed: %v", err)
		}
	})

	t.Run("backward movement is allowed", func(t *testing.T) {
		i := &Intent{Stage: workflow.StageConfirming}
		if err := i.AdvanceStage(workflow.StageConsulting); err != nil {
			t.Errorf("backward advance failed: %v", err)
		}
	})

	t.Run("foreign stage is rejected", func(t *testing.T) {
		i := &Intent{Stage: workflow.StageConsulting}
		if err := i.AdvanceStage(workflow.StageCollecting); err == nil {
			t.Error("collecting does not belong to this workflow")
		}
	})
}

func TestMissingFieldsEmptyIffReady(t *testing.T) {
	amount := amt("10")
	full := Intent{
		StrategyID: "steady-weekly", FromToken: "USDC", ToToken: "ETH",
		Cadence: "weekly", StartOn: "2026-09-01", Iterations: 4,
		PerCycleAmount: amount, Venue: "uniswap", SlippageBps: 50,
		Confirmed: true,
	}
	for _, stage := range workflow.StagesFor(model.KindDCA) {
		i := full
		i.Stage = stage
		missing := missingFields(&i)
		if stage == workflow.StageReady && len(missing) != 0 {
			t.Errorf("ready must have no missing fields, got %v", missing)
		}
		if stage == workflow.StageConfirming && len(missing) == 0 {
			t.Error("confirming must still miss the confirmation")
		}
	}
}

func TestRRule(t *testing.T) {
	cases := []struct {
		cadence    string
		iterations int
		want       string
	}{
		{"daily", 0, "FREQ=DAILY"},
		{"weekly", 12, "FREQ=WEEKLY;COUNT=12"},
		{"biweekly", 6, "FREQ=WEEKLY;INTERVAL=2;COUNT=6"},
		{"monthly", 3, "FREQ=MONTHLY;COUNT=3"},
	}
	for _, tc := range cases {
		t.Run(tc.cadence, func(t *testing.T) {
			if got := RRule(tc.cadence, tc.iterations); got != tc.want {
				t.Errorf("RRule = %q, want %q", got, tc.want)
			}
		})
	}
}
