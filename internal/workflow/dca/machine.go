// Package dca drives the consulting/recommending/confirming workflow for
// recurring-purchase (dollar-cost-averaging) plans.
package dca

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/registry"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/repository"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/datemath"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// Machine collects recurring-purchase parameters across the staged
// consulting -> recommending -> confirming -> ready dialogue. Unlike the
// simple kinds, ready is gated behind an explicit user confirmation.
type Machine struct {
	repo      repository.IRepository
	retriever Retriever
	parser    *datemath.Parser
	logger    log.Logger
}

// New creates a recurring-purchase machine.
func New(repo repository.IRepository, retriever Retriever, parser *datemath.Parser, logger log.Logger) *Machine {
	return &Machine{
		repo:      repo,
		retriever: retriever,
		parser:    parser,
		logger:    logger,
	}
}

// Update applies whatever the turn's text and pre-extracted params
// provide, advances the stage as far as the collected fields allow, and
// persists the intent.
func (m *Machine) Update(ctx context.Context, scope model.Scope, text string, params extract.Params) (workflow.Result, error) {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return workflow.Result{}, err
	}
	if intent == nil {
		intent = &Intent{Stage: workflow.StageConsulting}
	}

	fieldErr := m.apply(ctx, intent, text, params)
	intent.UpdatedAt = time.Now().UTC()

	if fieldErr == "" {
		m.progress(intent)
	}

	if intent.Stage == workflow.StageReady {
		return m.complete(ctx, scope, intent)
	}

	if err := m.save(ctx, scope, intent); err != nil {
		return workflow.Result{}, err
	}
	return m.pending(ctx, scope, intent, fieldErr), nil
}

// Reset abandons the live intent, recording it in history.
func (m *Machine) Reset(ctx context.Context, scope model.Scope, reason string) error {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return err
	}
	if intent == nil {
		return nil
	}

	fields, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("marshaling abandoned recurring-purchase intent: %w", err)
	}
	entry := workflow.HistoryEntry{
		Status:    workflow.StatusAbandoned,
		Kind:      model.KindDCA,
		Fields:    fields,
		Error:     reason,
		Timestamp: time.Now().UTC(),
	}
	if err := m.repo.AppendHistory(ctx, scope, model.KindDCA, entry); err != nil {
		return err
	}
	return m.repo.DeleteIntent(ctx, scope, model.KindDCA)
}

// Active reports whether a live intent exists for the scope.
func (m *Machine) Active(ctx context.Context, scope model.Scope) (bool, error) {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return false, err
	}
	return intent != nil, nil
}

// Awaiting reports whether the previous turn left the plan waiting for an
// explicit user confirmation.
func (m *Machine) Awaiting(ctx context.Context, scope model.Scope) (bool, error) {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return false, err
	}
	return intent != nil && intent.RequiresAction, nil
}

func (m *Machine) apply(ctx context.Context, intent *Intent, text string, params extract.Params) string {
	if intent.Stage == workflow.StageConfirming {
		switch {
		case isConfirmation(text):
			intent.Confirmed = true
			intent.RequiresAction = false
		case isDenial(text):
			// Backward movement: let the user revise earlier answers.
			if err := intent.AdvanceStage(workflow.StageRecommending); err == nil {
				intent.RequiresAction = false
			}
		}
	}

	if err := m.applyTokens(intent, text, params); err != "" {
		return err
	}

	if params.Amount != nil {
		if params.Amount.Sign() <= 0 {
			return "Amount must be greater than zero."
		}
		intent.PerCycleAmount = params.Amount
	}

	if cadence := detectCadence(text); cadence != "" {
		intent.Cadence = cadence
	}
	if start := detectStart(text, m.parser, time.Now()); start != "" {
		intent.StartOn = start
	}
	if iterations := detectIterations(text); iterations > 0 {
		intent.Iterations = iterations
	}
	if venue := detectVenue(text); venue != "" {
		if !registry.SupportsDCAVenue(venue) {
			return fmt.Sprintf("Venue %q cannot execute recurring purchases.", venue)
		}
		intent.Venue = venue
	}

	// Recommend a strategy once, then fill defaults into still-empty slots.
	if intent.StrategyID == "" && text != "" {
		strategy := m.retriever.Recommend(ctx, text)
		intent.StrategyID = strategy.ID
		if intent.Venue == "" {
			intent.Venue = strategy.Venue
		}
		if intent.Cadence == "" && detectCadence(text) == "" {
			intent.Cadence = strategy.Cadence
		}
		if intent.SlippageBps == 0 {
			intent.SlippageBps = strategy.SlippageBps
		}
	}
	if intent.SlippageBps == 0 {
		intent.SlippageBps = DefaultSlippageBps
	}

	return ""
}

func (m *Machine) applyTokens(intent *Intent, text string, params extract.Params) string {
	if params.FromToken != "" && params.ToToken != "" {
		from, okFrom := registry.NormalizeToken(params.FromToken)
		to, okTo := registry.NormalizeToken(params.ToToken)
		if !okFrom || !okTo {
			return "One of the tokens mentioned is not supported."
		}
		intent.FromToken = from
		intent.ToToken = to
		return ""
	}

	for _, token := range detectTokens(text) {
		if isSpendToken(token) {
			if intent.FromToken == "" {
				intent.FromToken = token
			}
		} else if intent.ToToken == "" {
			intent.ToToken = token
		}
	}
	return ""
}

// progress auto-advances while the current stage has nothing missing.
func (m *Machine) progress(intent *Intent) {
	for {
		switch intent.Stage {
		case workflow.StageConsulting:
			if len(consultingMissing(intent)) > 0 {
				return
			}
			_ = intent.AdvanceStage(workflow.StageRecommending)
		case workflow.StageRecommending:
			if len(recommendingMissing(intent)) > 0 {
				return
			}
			_ = intent.AdvanceStage(workflow.StageConfirming)
			intent.RequiresAction = true
		case workflow.StageConfirming:
			if !intent.Confirmed {
				return
			}
			_ = intent.AdvanceStage(workflow.StageReady)
		default:
			return
		}
	}
}

func consultingMissing(intent *Intent) []string {
	var missing []string
	if intent.StrategyID == "" {
		missing = append(missing, FieldStrategy)
	}
	if intent.FromToken == "" {
		missing = append(missing, FieldFromToken)
	}
	if intent.ToToken == "" {
		missing = append(missing, FieldToToken)
	}
	return missing
}

func recommendingMissing(intent *Intent) []string {
	var missing []string
	if intent.Cadence == "" {
		missing = append(missing, FieldCadence)
	}
	if intent.StartOn == "" {
		missing = append(missing, FieldStartOn)
	}
	if intent.Iterations == 0 {
		missing = append(missing, FieldIterations)
	}
	if intent.PerCycleAmount == nil {
		missing = append(missing, FieldAmount)
	}
	if intent.Venue == "" {
		missing = append(missing, FieldVenue)
	}
	return missing
}

// missingFields is empty exactly when the stage is ready.
func missingFields(intent *Intent) []string {
	switch intent.Stage {
	case workflow.StageConsulting:
		return consultingMissing(intent)
	case workflow.StageRecommending:
		return recommendingMissing(intent)
	case workflow.StageConfirming:
		return []string{FieldConfirm}
	default:
		return nil
	}
}

func (m *Machine) choicesFor(intent *Intent, field string) []string {
	switch field {
	case FieldStrategy:
		return StrategyIDs()
	case FieldFromToken:
		out := make([]string, len(spendTokens))
		copy(out, spendTokens)
		return out
	case FieldCadence:
		return registry.DCACadences()
	case FieldVenue:
		return registry.DCAVenues()
	case FieldConfirm:
		return []string{"yes", "no"}
	}
	return nil
}

func (m *Machine) pending(ctx context.Context, scope model.Scope, intent *Intent, fieldErr string) workflow.Result {
	missing := missingFields(intent)
	result := workflow.Result{
		Event:         workflow.PendingEvent(model.KindDCA),
		Stage:         intent.Stage,
		MissingFields: missing,
		Error:         fieldErr,
		Intent:        intent,
		History:       m.history(ctx, scope),
	}
	if len(missing) > 0 {
		result.NextField = missing[0]
		result.PendingQuestion = questions[missing[0]]
		result.Choices = m.choicesFor(intent, missing[0])
		if missing[0] == FieldConfirm {
			result.PendingQuestion = fmt.Sprintf("%s %s", planSummary(intent), questions[FieldConfirm])
		}
	}
	return result
}

func planSummary(intent *Intent) string {
	return fmt.Sprintf("Plan: spend %s %s on %s %s, starting %s, for %d purchases via %s (slippage %d bps).",
		intent.PerCycleAmount.String(), intent.FromToken, intent.ToToken, intent.Cadence,
		intent.StartOn, intent.Iterations, intent.Venue, intent.SlippageBps)
}

func (m *Machine) complete(ctx context.Context, scope model.Scope, intent *Intent) (workflow.Result, error) {
	intent.RequiresAction = false

	fields, err := json.Marshal(intent)
	if err != nil {
		return workflow.Result{}, fmt.Errorf("marshaling completed recurring-purchase intent: %w", err)
	}
	entry := workflow.HistoryEntry{
		Status:    workflow.StatusCompleted,
		Kind:      model.KindDCA,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
	if err := m.repo.AppendHistory(ctx, scope, model.KindDCA, entry); err != nil {
		return workflow.Result{}, err
	}
	if err := m.repo.DeleteIntent(ctx, scope, model.KindDCA); err != nil {
		return workflow.Result{}, err
	}

	m.logger.Info(ctx, "recurring-purchase intent ready",
		"user_id", scope.UserID,
		"conversation_id", scope.ConversationID,
		"strategy_id", intent.StrategyID,
	)

	return workflow.Result{
		Event:         workflow.ReadyEvent(model.KindDCA),
		Stage:         workflow.StageReady,
		MissingFields: []string{},
		Metadata: map[string]interface{}{
			"strategy_id":      intent.StrategyID,
			"from_token":       intent.FromToken,
			"to_token":         intent.ToToken,
			"cadence":          intent.Cadence,
			"start_on":         intent.StartOn,
			"iterations":       intent.Iterations,
			"per_cycle_amount": intent.PerCycleAmount.String(),
			"venue":            intent.Venue,
			"slippage_bps":     intent.SlippageBps,
			"rrule":            RRule(intent.Cadence, intent.Iterations),
			"summary":          planSummary(intent),
		},
		Intent:  intent,
		History: m.history(ctx, scope),
	}, nil
}

// RRule renders the plan cadence as an iCalendar recurrence rule.
func RRule(cadence string, iterations int) string {
	var rule string
	switch cadence {
	case "daily":
		rule = "FREQ=DAILY"
	case "weekly":
		rule = "FREQ=WEEKLY"
	case "biweekly":
		rule = "FREQ=WEEKLY;INTERVAL=2"
	case "monthly":
		rule = "FREQ=MONTHLY"
	default:
		rule = "FREQ=WEEKLY"
	}
	if iterations > 0 {
		rule = fmt.Sprintf("%s;COUNT=%d", rule, iterations)
	}
	return rule
}

func (m *Machine) history(ctx context.Context, scope model.Scope) []workflow.HistoryEntry {
	entries, err := m.repo.ListHistory(ctx, scope, model.KindDCA, workflow.HistoryLimit)
	if err != nil {
		m.logger.Warn(ctx, "listing recurring-purchase history failed", "error", err.Error())
		return nil
	}
	return entries
}

func (m *Machine) load(ctx context.Context, scope model.Scope) (*Intent, error) {
	raw, err := m.repo.LoadIntent(ctx, scope, model.KindDCA)
	if err != nil {
		if errors.Is(err, repository.ErrIntentNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decoding recurring-purchase intent: %w", err)
	}
	return &intent, nil
}

func (m *Machine) save(ctx context.Context, scope model.Scope, intent *Intent) error {
	raw, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encoding recurring-purchase intent: %w", err)
	}
	return m.repo.SaveIntent(ctx, scope, model.KindDCA, raw)
}
