package agent

import (
	"context"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/llmprovider"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// PlainHandler answers a turn with a single model generation under a fixed
// persona. It carries no state between turns.
type PlainHandler struct {
	name   string
	prompt string
	llm    *llmprovider.Manager
	logger log.Logger
}

var _ Handler = (*PlainHandler)(nil)

func NewPlainHandler(name, prompt string, llm *llmprovider.Manager, logger log.Logger) *PlainHandler {
	return &PlainHandler{name: name, prompt: prompt, llm: llm, logger: logger}
}

// ConversationalHandlers builds the five persona handlers sharing one
// provider manager.
func ConversationalHandlers(llm *llmprovider.Manager, logger log.Logger) []Handler {
	return []Handler{
		NewPlainHandler(router.HandlerMarketData, promptMarketData, llm, logger),
		NewPlainHandler(router.HandlerSearch, promptSearch, llm, logger),
		NewPlainHandler(router.HandlerPortfolio, promptPortfolio, llm, logger),
		NewPlainHandler(router.HandlerEducation, promptEducation, llm, logger),
		NewPlainHandler(router.HandlerDefault, promptDefault, llm, logger),
	}
}

func (h *PlainHandler) Name() string { return h.name }

// Handle generates a reply from the windowed conversation plus the current
// message. Provider failure degrades to a canned apology in the same turn.
func (h *PlainHandler) Handle(ctx context.Context, turn *Turn) (*Reply, error) {
	messages := make([]llmprovider.Message, 0, len(turn.Messages)+1)
	for _, msg := range turn.Messages {
		messages = append(messages, llmprovider.Message{
			Role:  roleFor(msg.Role),
			Parts: []llmprovider.Part{{Text: msg.Content}},
		})
	}
	messages = append(messages, llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: turn.Text}},
	})

	resp, err := h.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: h.prompt}},
		},
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		h.logger.Errorf(ctx, "agent.PlainHandler.Handle: %s generation failed: %v", h.name, err)
		return &Reply{Handler: h.name, Text: llmUnavailableReply}, nil
	}

	return &Reply{Handler: h.name, Text: resp.Text()}, nil
}

func roleFor(role model.Role) string {
	switch role {
	case model.RoleAssistant:
		return "assistant"
	case model.RoleSystem:
		return "system"
	default:
		return "user"
	}
}
