package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

type mockUseCase struct {
	chat func(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error)
}

func (m *mockUseCase) Chat(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
	return m.chat(ctx, input)
}

func newTestRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc))
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	t.Run("valid turn returns the reply", func(t *testing.T) {
		var gotInput chat.ChatInput
		r := newTestRouter(&mockUseCase{
			chat: func(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
				gotInput = input
				return chat.ChatOutput{
					Reply:      "Which token do you want to swap from?",
					Handler:    "swap_agent",
					Category:   "swap",
					Confidence: 0.91,
				}, nil
			},
		})

		w := postChat(t, r, `{
			"user_id": "u1",
			"conversation_id": "c1",
			"message": "I want to swap",
			"history": [{"role": "user", "content": "hi"}]
		}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if gotInput.UserID != "u1" || len(gotInput.History) != 1 {
			t.Errorf("input not mapped: %+v", gotInput)
		}

		var body struct {
			Data struct {
				Reply   string `json:"reply"`
				Handler string `json:"handler"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Handler != "swap_agent" || !strings.Contains(body.Data.Reply, "swap from") {
			t.Errorf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{
			chat: func(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
				t.Fatal("usecase must not run")
				return chat.ChatOutput{}, nil
			},
		})

		if w := postChat(t, r, `{"message": "no ids"}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("domain validation error is a bad request", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{
			chat: func(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
				return chat.ChatOutput{}, chat.ErrInvalidScope
			},
		})

		if w := postChat(t, r, `{"user_id": "u", "conversation_id": "c", "message": "hi"}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("unknown error stays opaque", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{
			chat: func(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
				return chat.ChatOutput{}, errors.New("gateway exploded")
			},
		})

		w := postChat(t, r, `{"user_id": "u", "conversation_id": "c", "message": "hi"}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "exploded") {
			t.Errorf("internal detail leaked: %s", w.Body.String())
		}
	})
}
