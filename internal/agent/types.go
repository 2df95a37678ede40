// Package agent defines the handler contract and the static dispatch
// table routing decisions resolve into.
package agent

import (
	"context"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// Turn is the shared per-turn context every handler consumes. Stages never
// communicate out-of-band; everything a handler may need is here.
type Turn struct {
	Scope           model.Scope
	Text            string
	Messages        []model.Message
	Decision        router.RouteDecision
	Params          extract.Params
	PreflightErrors []string
}

// Reply is a handler's outcome for the turn.
type Reply struct {
	Handler string
	Text    string
	// Result is set by workflow handlers and carries the structured
	// slot-filling payload.
	Result *workflow.Result
}

// Handler processes one routed turn.
type Handler interface {
	Name() string
	Handle(ctx context.Context, turn *Turn) (*Reply, error)
}
