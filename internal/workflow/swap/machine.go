// Package swap drives the slot-filling state machine for token swaps.
package swap

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
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// Machine collects swap parameters one turn at a time. Malformed input is
// reported through the structured result, never as an error return; error
// returns are reserved for store failures.
type Machine struct {
	repo   repository.IRepository
	logger log.Logger
}

// New creates a swap machine.
func New(repo repository.IRepository, logger log.Logger) *Machine {
	return &Machine{repo: repo, logger: logger}
}

// Update applies the fields present in params (absent never clears),
// persists the intent, and reports what is still missing. When nothing is
// missing the intent completes: its snapshot moves to history and the
// live record is deleted.
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
		return fmt.Errorf("marshaling abandoned swap intent: %w", err)
	}
	entry := workflow.HistoryEntry{
		Status:    workflow.StatusAbandoned,
		Kind:      model.KindSwap,
		Fields:    fields,
		Error:     reason,
		Timestamp: time.Now().UTC(),
	}
	if err := m.repo.AppendHistory(ctx, scope, model.KindSwap, entry); err != nil {
		return err
	}
	return m.repo.DeleteIntent(ctx, scope, model.KindSwap)
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

// apply merges the present fields, last writer wins per field, and
// re-validates fields whose prerequisite changed. It returns a
// user-facing message for rejected values.
func (m *Machine) apply(intent *Intent, params extract.Params) string {
	if params.FromNetwork != "" {
		network, ok := registry.NormalizeNetwork(params.FromNetwork)
		if !ok {
			return fmt.Sprintf("Network %q is not supported.", params.FromNetwork)
		}
		if network != intent.FromNetwork {
			intent.FromNetwork = network
			if intent.FromToken != "" && !registry.SupportsToken(network, intent.FromToken) {
				intent.FromToken = ""
			}
		}
	}

	if params.ToNetwork != "" {
		network, ok := registry.NormalizeNetwork(params.ToNetwork)
		if !ok {
			return fmt.Sprintf("Network %q is not supported.", params.ToNetwork)
		}
		if intent.FromNetwork != "" && !registry.RouteSupported(intent.FromNetwork, network) {
			return fmt.Sprintf("Swaps from %s to %s are not supported yet.", intent.FromNetwork, network)
		}
		if network != intent.ToNetwork {
			intent.ToNetwork = network
			if intent.ToToken != "" && !registry.SupportsToken(network, intent.ToToken) {
				intent.ToToken = ""
			}
		}
	}

	if params.FromToken != "" {
		token, ok := registry.NormalizeToken(params.FromToken)
		if !ok {
			return fmt.Sprintf("Token %q is not supported.", params.FromToken)
		}
		if intent.FromNetwork != "" && !registry.SupportsToken(intent.FromNetwork, token) {
			return fmt.Sprintf("Token %s is not available on %s.", token, intent.FromNetwork)
		}
		intent.FromToken = token
	}

	if params.ToToken != "" {
		token, ok := registry.NormalizeToken(params.ToToken)
		if !ok {
			return fmt.Sprintf("Token %q is not supported.", params.ToToken)
		}
		if intent.ToNetwork != "" && !registry.SupportsToken(intent.ToNetwork, token) {
			return fmt.Sprintf("Token %s is not available on %s.", token, intent.ToNetwork)
		}
		intent.ToToken = token
	}

	if params.Amount != nil {
		if params.Amount.Sign() <= 0 {
			return "Amount must be greater than zero."
		}
		intent.Amount = params.Amount
	}

	if intent.FromToken != "" && intent.FromToken == intent.ToToken &&
		intent.FromNetwork != "" && intent.FromNetwork == intent.ToNetwork {
		intent.ToToken = ""
		return "Source and destination are identical; pick a different token to receive."
	}

	return ""
}

func missingFields(intent *Intent) []string {
	var missing []string
	if intent.FromNetwork == "" {
		missing = append(missing, FieldFromNetwork)
	}
	if intent.FromToken == "" {
		missing = append(missing, FieldFromToken)
	}
	// Destination choices depend on the source network.
	if intent.FromNetwork != "" && intent.ToNetwork == "" {
		missing = append(missing, FieldToNetwork)
	}
	if intent.ToToken == "" {
		missing = append(missing, FieldToToken)
	}
	if intent.Amount == nil {
		missing = append(missing, FieldAmount)
	}
	return missing
}

func (m *Machine) choicesFor(intent *Intent, field string) []string {
	switch field {
	case FieldFromNetwork:
		return registry.Networks()
	case FieldFromToken:
		if intent.FromNetwork != "" {
			return registry.TokensFor(intent.FromNetwork)
		}
	case FieldToNetwork:
		var out []string
		for _, network := range registry.Networks() {
			if registry.RouteSupported(intent.FromNetwork, network) {
				out = append(out, network)
			}
		}
		return out
	case FieldToToken:
		if intent.ToNetwork != "" {
			return registry.TokensFor(intent.ToNetwork)
		}
	}
	return nil
}

func (m *Machine) pending(ctx context.Context, scope model.Scope, intent *Intent, missing []string, fieldErr string) workflow.Result {
	result := workflow.Result{
		Event:         workflow.PendingEvent(model.KindSwap),
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
	}
	return result
}

func (m *Machine) complete(ctx context.Context, scope model.Scope, intent *Intent) (workflow.Result, error) {
	intent.Stage = workflow.StageReady
	intent.Confirmed = true
	intent.RequiresAction = false

	fields, err := json.Marshal(intent)
	if err != nil {
		return workflow.Result{}, fmt.Errorf("marshaling completed swap intent: %w", err)
	}
	entry := workflow.HistoryEntry{
		Status:    workflow.StatusCompleted,
		Kind:      model.KindSwap,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
	if err := m.repo.AppendHistory(ctx, scope, model.KindSwap, entry); err != nil {
		return workflow.Result{}, err
	}
	if err := m.repo.DeleteIntent(ctx, scope, model.KindSwap); err != nil {
		return workflow.Result{}, err
	}

	m.logger.Info(ctx, "swap intent ready",
		"user_id", scope.UserID,
		"conversation_id", scope.ConversationID,
	)

	return workflow.Result{
		Event:         workflow.ReadyEvent(model.KindSwap),
		Stage:         workflow.StageReady,
		MissingFields: []string{},
		Metadata: map[string]interface{}{
			"from_network": intent.FromNetwork,
			"from_token":   intent.FromToken,
			"to_network":   intent.ToNetwork,
			"to_token":     intent.ToToken,
			"amount":       intent.Amount.String(),
			"summary": fmt.Sprintf("Swap %s %s on %s for %s on %s",
				intent.Amount.String(), intent.FromToken, intent.FromNetwork,
				intent.ToToken, intent.ToNetwork),
		},
		Intent:  intent,
		History: m.history(ctx, scope),
	}, nil
}

func (m *Machine) history(ctx context.Context, scope model.Scope) []workflow.HistoryEntry {
	entries, err := m.repo.ListHistory(ctx, scope, model.KindSwap, workflow.HistoryLimit)
	if err != nil {
		m.logger.Warn(ctx, "listing swap history failed", "error", err.Error())
		return nil
	}
	return entries
}

func (m *Machine) load(ctx context.Context, scope model.Scope) (*Intent, error) {
	raw, err := m.repo.LoadIntent(ctx, scope, model.KindSwap)
	if err != nil {
		if errors.Is(err, repository.ErrIntentNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decoding swap intent: %w", err)
	}
	return &intent, nil
}

func (m *Machine) save(ctx context.Context, scope model.Scope, intent *Intent) error {
	raw, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encoding swap intent: %w", err)
	}
	return m.repo.SaveIntent(ctx, scope, model.KindSwap, raw)
}
