// Package usecase implements the chat turn pipeline. Stages run in a fixed
// order and communicate only through explicit values on the turn.
package usecase

import (
	"context"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/agent"
	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/internal/window"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// DefaultTurnTimeout bounds one full turn including model calls.
const DefaultTurnTimeout = 30 * time.Second

// Workflow is the state surface each slot-filling machine exposes to the
// pipeline for routing.
type Workflow interface {
	Active(ctx context.Context, scope model.Scope) (bool, error)
	Awaiting(ctx context.Context, scope model.Scope) (bool, error)
}

// classifier narrows router.Classifier for testing.
type classifier interface {
	Classify(ctx context.Context, text string) router.RouteDecision
}

// dispatcher narrows agent.Dispatcher for testing.
type dispatcher interface {
	Dispatch(ctx context.Context, turn *agent.Turn) (*agent.Reply, error)
}

// routeFn narrows router.Router for testing.
type routeFn interface {
	Route(ctx context.Context, s router.State) router.RouteDecision
}

// implUseCase is the private implementation of chat.UseCase.
type implUseCase struct {
	windower   *window.Windower
	classifier classifier
	router     routeFn
	dispatcher dispatcher
	workflows  map[model.WorkflowKind]Workflow
	timeout    time.Duration
	l          log.Logger
}

var _ chat.UseCase = (*implUseCase)(nil)

// New creates the chat UseCase implementation. timeout <= 0 falls back to
// DefaultTurnTimeout.
func New(
	windower *window.Windower,
	cls classifier,
	rt routeFn,
	disp dispatcher,
	workflows map[model.WorkflowKind]Workflow,
	timeout time.Duration,
	l log.Logger,
) *implUseCase {
	if timeout <= 0 {
		timeout = DefaultTurnTimeout
	}
	return &implUseCase{
		windower:   windower,
		classifier: cls,
		router:     rt,
		dispatcher: disp,
		workflows:  workflows,
		timeout:    timeout,
		l:          l,
	}
}
