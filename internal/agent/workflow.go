package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// slotMachine is the surface the swap, lending and staking machines share.
type slotMachine interface {
	Update(ctx context.Context, scope model.Scope, params extract.Params) (workflow.Result, error)
	Reset(ctx context.Context, scope model.Scope, reason string) error
}

// WorkflowHandler drives a single-stage slot-filling machine: apply the
// extracted fields, then either ask for the next field or report the
// completed intent.
type WorkflowHandler struct {
	name    string
	kind    model.WorkflowKind
	machine slotMachine
	logger  log.Logger
}

var _ Handler = (*WorkflowHandler)(nil)

func NewWorkflowHandler(name string, kind model.WorkflowKind, machine slotMachine, logger log.Logger) *WorkflowHandler {
	return &WorkflowHandler{name: name, kind: kind, machine: machine, logger: logger}
}

func (h *WorkflowHandler) Name() string { return h.name }

func (h *WorkflowHandler) Handle(ctx context.Context, turn *Turn) (*Reply, error) {
	if IsCancellation(turn.Text) {
		if err := h.machine.Reset(ctx, turn.Scope, "user cancelled"); err != nil {
			return nil, fmt.Errorf("agent.WorkflowHandler.Handle: reset: %w", err)
		}
		h.logger.Infof(ctx, "agent.WorkflowHandler.Handle: %s workflow cancelled", h.kind)
		return &Reply{Handler: h.name, Text: cancelledReply}, nil
	}

	res, err := h.machine.Update(ctx, turn.Scope, turn.Params)
	if err != nil {
		return nil, fmt.Errorf("agent.WorkflowHandler.Handle: update: %w", err)
	}
	return &Reply{Handler: h.name, Text: resultText(&res), Result: &res}, nil
}

// resultText renders the structured result as the conversational reply.
func resultText(res *workflow.Result) string {
	if res.Stage == workflow.StageReady {
		if summary, ok := res.Metadata["summary"].(string); ok && summary != "" {
			return summary + " Everything is set; ready to execute."
		}
		return "All set; ready to execute."
	}

	var parts []string
	if res.Error != "" {
		parts = append(parts, res.Error)
	}
	if res.PendingQuestion != "" {
		parts = append(parts, res.PendingQuestion)
	}
	if len(parts) == 0 {
		parts = append(parts, "Could you tell me a bit more?")
	}
	return strings.Join(parts, " ")
}

// IsCancellation reports whether the message is an explicit abort of the
// active workflow. Matching is word-bounded so "cancel" inside another
// word does not trigger it.
func IsCancellation(text string) bool {
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,!?;:")
		for _, w := range cancelWords {
			if f == w {
				return true
			}
		}
	}
	return false
}
