package http

import (
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
)

// --- Request DTOs ---

type messageReq struct {
	Role      string    `json:"role"    binding:"required,oneof=user assistant system"`
	Content   string    `json:"content" binding:"required"`
	CreatedAt time.Time `json:"created_at"`
}

type chatReq struct {
	UserID         string       `json:"user_id"         binding:"required,min=1,max=128"`
	ConversationID string       `json:"conversation_id" binding:"required,min=1,max=128"`
	Message        string       `json:"message"         binding:"required,min=1,max=4000"`
	History        []messageReq `json:"history"         binding:"max=200,dive"`
}

func (r chatReq) validate() error { return nil }

func (r chatReq) toInput() chat.ChatInput {
	history := make([]model.Message, len(r.History))
	for i, m := range r.History {
		history[i] = model.Message{
			Role:      model.Role(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return chat.ChatInput{
		UserID:         r.UserID,
		ConversationID: r.ConversationID,
		Message:        r.Message,
		History:        history,
	}
}

// --- Response DTOs ---

type chatResp struct {
	Reply      string           `json:"reply"`
	Handler    string           `json:"handler"`
	Category   string           `json:"category"`
	Confidence float64          `json:"confidence"`
	Result     *workflow.Result `json:"result,omitempty"`
}

func (h *handler) newChatResp(out chat.ChatOutput) chatResp {
	return chatResp{
		Reply:      out.Reply,
		Handler:    out.Handler,
		Category:   out.Category,
		Confidence: out.Confidence,
		Result:     out.Result,
	}
}
