// Package staking drives the slot-filling state machine for Lido staking
// on Ethereum mainnet.
package staking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/registry"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/repository"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// Machine collects staking parameters one turn at a time.
type Machine struct {
	repo   repository.IRepository
	logger log.Logger
}

// New creates a staking machine.
func New(repo repository.IRepository, logger log.Logger) *Machine {
	return &Machine{repo: repo, logger: logger}
}

// Update applies the fields present in params, persists the intent, and
// reports what is still missing.
func (m *Machine) Update(ctx context.Context, scope model.Scope, params extract.Params) (workflow.Result, error) {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return workflow.Result{}, err
	}
	if intent == nil {
		intent = &Intent{Stage: workflow.StageCollecting}
	}

	fieldErr := m.apply(intent, params)
	intent.UpdatedAt = time.Now().UTC()

	missing := missingFields(intent)
	if fieldErr == "" && len(missing) == 0 {
		return m.complete(ctx, scope, intent)
	}

	if err := m.save(ctx, scope, intent); err != nil {
		return workflow.Result{}, err
	}
	return m.pending(ctx, scope, intent, missing, fieldErr), nil
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
		return fmt.Errorf("marshaling abandoned staking intent: %w", err)
	}
	entry := workflow.HistoryEntry{
		Status:    workflow.StatusAbandoned,
		Kind:      model.KindStaking,
		Fields:    fields,
		Error:     reason,
		Timestamp: time.Now().UTC(),
	}
	if err := m.repo.AppendHistory(ctx, scope, model.KindStaking, entry); err != nil {
		return err
	}
	return m.repo.DeleteIntent(ctx, scope, model.KindStaking)
}

// Active reports whether a live intent exists for the scope.
func (m *Machine) Active(ctx context.Context, scope model.Scope) (bool, error) {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return false, err
	}
	return intent != nil, nil
}

// Awaiting reports whether the previous turn left the intent waiting for
// an explicit user confirmation.
func (m *Machine) Awaiting(ctx context.Context, scope model.Scope) (bool, error) {
	intent, err := m.load(ctx, scope)
	if err != nil {
		return false, err
	}
	return intent != nil && intent.RequiresAction, nil
}

func (m *Machine) apply(intent *Intent, params extract.Params) string {
	if params.Action != "" {
		action := strings.ToLower(strings.TrimSpace(params.Action))
		if canonical, ok := actionSynonyms[action]; ok {
			action = canonical
		}
		if !validAction(action) {
			return fmt.Sprintf("Action %q is not supported. Try one of: %s.", params.Action, strings.Join(actions, ", "))
		}
		intent.Action = action
	}

	if params.Amount != nil {
		if params.Amount.Sign() <= 0 {
			return "Amount must be greater than zero."
		}
		intent.Amount = params.Amount
	}

	return ""
}

func validAction(action string) bool {
	for _, a := range actions {
		if action == a {
			return true
		}
	}
	return false
}

func missingFields(intent *Intent) []string {
	var missing []string
	if intent.Action == "" {
		missing = append(missing, FieldAction)
	}
	// Claiming rewards needs no amount.
	if intent.Action != ActionClaim && intent.Amount == nil {
		missing = append(missing, FieldAmount)
	}
	return missing
}

func (m *Machine) choicesFor(field string) []string {
	if field == FieldAction {
		out := make([]string, len(actions))
		copy(out, actions)
		return out
	}
	return nil
}

// tokensFor derives input and output tokens from the action.
func tokensFor(action string) (in, out string) {
	switch action {
	case ActionUnstake:
		return registry.StakingOutToken, registry.StakingInToken
	case ActionClaim:
		return "", registry.StakingOutToken
	default:
		return registry.StakingInToken, registry.StakingOutToken
	}
}

func (m *Machine) pending(ctx context.Context, scope model.Scope, intent *Intent, missing []string, fieldErr string) workflow.Result {
	result := workflow.Result{
		Event:         workflow.PendingEvent(model.KindStaking),
		Stage:         intent.Stage,
		MissingFields: missing,
		Error:         fieldErr,
		Intent:        intent,
		History:       m.history(ctx, scope),
	}
	if len(missing) > 0 {
		result.NextField = missing[0]
		result.PendingQuestion = questions[missing[0]]
		result.Choices = m.choicesFor(missing[0])
	}
	return result
}

func (m *Machine) complete(ctx context.Context, scope model.Scope, intent *Intent) (workflow.Result, error) {
	intent.Stage = workflow.StageReady
	intent.Confirmed = true
	intent.RequiresAction = false

	fields, err := json.Marshal(intent)
	if err != nil {
		return workflow.Result{}, fmt.Errorf("marshaling completed staking intent: %w", err)
	}
	entry := workflow.HistoryEntry{
		Status:    workflow.StatusCompleted,
		Kind:      model.KindStaking,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
	if err := m.repo.AppendHistory(ctx, scope, model.KindStaking, entry); err != nil {
		return workflow.Result{}, err
	}
	if err := m.repo.DeleteIntent(ctx, scope, model.KindStaking); err != nil {
		return workflow.Result{}, err
	}

	m.logger.Info(ctx, "staking intent ready",
		"user_id", scope.UserID,
		"conversation_id", scope.ConversationID,
		"action", intent.Action,
	)

	inToken, outToken := tokensFor(intent.Action)
	metadata := map[string]interface{}{
		"action":    intent.Action,
		"venue":     registry.StakingVenue,
		"network":   registry.StakingNetwork,
		"chain_id":  registry.StakingChainID,
		"out_token": outToken,
	}
	if inToken != "" {
		metadata["in_token"] = inToken
	}
	if intent.Amount != nil {
		metadata["amount"] = intent.Amount.String()
		metadata["summary"] = fmt.Sprintf("%s %s %s via %s on %s",
			capitalize(intent.Action), intent.Amount.String(), inToken,
			registry.StakingVenue, registry.StakingNetwork)
	} else {
		metadata["summary"] = fmt.Sprintf("Claim %s rewards via %s on %s",
			outToken, registry.StakingVenue, registry.StakingNetwork)
	}

	return workflow.Result{
		Event:         workflow.ReadyEvent(model.KindStaking),
		Stage:         workflow.StageReady,
		MissingFields: []string{},
		Metadata:      metadata,
		Intent:        intent,
		History:       m.history(ctx, scope),
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m *Machine) history(ctx context.Context, scope model.Scope) []workflow.HistoryEntry {
	entries, err := m.repo.ListHistory(ctx, scope, model.KindStaking, workflow.HistoryLimit)
	if err != nil {
		m.logger.Warn(ctx, "listing staking history failed", "error", err.Error())
		return nil
	}
	return entries
}

func (m *Machine) load(ctx context.Context, scope model.Scope) (*Intent, error) {
	raw, err := m.repo.LoadIntent(ctx, scope, model.KindStaking)
	if err != nil {
		if errors.Is(err, repository.ErrIntentNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decoding staking intent: %w", err)
	}
	return &intent, nil
}

func (m *Machine) save(ctx context.Context, scope model.Scope, intent *Intent) error {
	raw, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encoding staking intent: %w", err)
	}
	return m.repo.SaveIntent(ctx, scope, model.KindStaking, raw)
}
