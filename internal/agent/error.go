package agent

import (
	"context"
	"strings"

	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// ErrorHandler reports validation problems found before routing, without
// touching any workflow state.
type ErrorHandler struct {
	logger log.Logger
}

var _ Handler = (*ErrorHandler)(nil)

func NewErrorHandler(logger log.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) Name() string { return router.HandlerError }

func (h *ErrorHandler) Handle(ctx context.Context, turn *Turn) (*Reply, error) {
	if len(turn.PreflightErrors) == 0 {
		return &Reply{Handler: h.Name(), Text: "Something in that request didn't check out. Could you rephrase it?"}, nil
	}
	h.logger.Infof(ctx, "agent.ErrorHandler.Handle: rejecting turn with %d validation errors", len(turn.PreflightErrors))
	return &Reply{
		Handler: h.Name(),
		Text:    strings.Join(turn.PreflightErrors, " "),
	}, nil
}
