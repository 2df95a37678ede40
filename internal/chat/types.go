package chat

import (
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// --- UseCase Inputs ---

// ChatInput is one user turn. History is the client-held transcript of
// prior turns, oldest first; the pipeline windows it before use.
type ChatInput struct {
	UserID         string
	ConversationID string
	Message        string
	History        []model.Message
}

// --- UseCase Outputs ---

// ChatOutput is the handled turn.
type ChatOutput struct {
	Reply   string
	Handler string

	// Category and Confidence describe the routing decision that picked
	// the handler.
	Category   string
	Confidence float64

	// Result carries the structured workflow payload when a slot-filling
	// handler owned the turn.
	Result *workflow.Result
}
