package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Panorama-Block/zico-agents-sub000/internal/agent"
	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/preflight"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
)

// Chat runs one turn: window the history, extract fields, validate them,
// route, dispatch, sanitize the reply.
func (uc *implUseCase) Chat(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
	text := strings.TrimSpace(input.Message)
	if text == "" {
		return chat.ChatOutput{}, chat.ErrEmptyMessage
	}
	scope, err := model.NewScope(input.UserID, input.ConversationID)
	if err != nil {
		return chat.ChatOutput{}, chat.ErrInvalidScope
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	messages := uc.windower.Window(ctx, input.History)
	activeKind, awaitingKind := uc.workflowState(ctx, scope)
	classified := uc.classifier.Classify(ctx, text)

	// An active workflow pins extraction and validation to its kind;
	// otherwise the classified category decides, when it is stateful.
	kind, hasKind := activeKind, activeKind != ""
	if !hasKind {
		kind, hasKind = router.KindForCategory(classified.IntentCategory)
	}

	params := extract.Extract(text, hintFor(kind))
	var preflightErrs []string
	if hasKind {
		preflightErrs = preflight.Validate(kind, params)
	}

	decision := uc.router.Route(ctx, router.State{
		Text:            text,
		PreflightErrors: preflightErrs,
		ActiveKind:      activeKind,
		AwaitingKind:    awaitingKind,
		Category:        classified.IntentCategory,
		Confidence:      classified.Confidence,
	})

	reply, err := uc.dispatcher.Dispatch(ctx, &agent.Turn{
		Scope:           scope,
		Text:            text,
		Messages:        messages,
		Decision:        decision,
		Params:          params,
		PreflightErrors: preflightErrs,
	})
	if err != nil {
		return chat.ChatOutput{}, fmt.Errorf("chat.usecase.Chat: dispatch: %w", err)
	}

	return chat.ChatOutput{
		Reply:      sanitizeReply(reply.Text),
		Handler:    reply.Handler,
		Category:   string(decision.IntentCategory),
		Confidence: decision.Confidence,
		Result:     reply.Result,
	}, nil
}

// workflowState probes each machine for live state. A storage failure on
// one machine must not take the turn down; it reads as inactive.
func (uc *implUseCase) workflowState(ctx context.Context, scope model.Scope) (active, awaiting model.WorkflowKind) {
	for _, kind := range model.StatefulKinds() {
		wf, ok := uc.workflows[kind]
		if !ok {
			continue
		}
		if active == "" {
			isActive, err := wf.Active(ctx, scope)
			if err != nil {
				uc.l.Warnf(ctx, "chat.usecase.workflowState: %s active probe: %v", kind, err)
			} else if isActive {
				active = kind
			}
		}
		if awaiting == "" {
			isAwaiting, err := wf.Awaiting(ctx, scope)
			if err != nil {
				uc.l.Warnf(ctx, "chat.usecase.workflowState: %s awaiting probe: %v", kind, err)
			} else if isAwaiting {
				awaiting = kind
			}
		}
	}
	return active, awaiting
}

func hintFor(kind model.WorkflowKind) extract.Hint {
	switch kind {
	case model.KindSwap:
		return extract.HintSwap
	case model.KindLending:
		return extract.HintLending
	case model.KindStaking:
		return extract.HintStaking
	case model.KindDCA:
		return extract.HintDCA
	default:
		return extract.HintNone
	}
}
