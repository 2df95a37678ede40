package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Panorama-Block/zico-agents-sub000/internal/agent"
	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/internal/window"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

type stubClassifier struct {
	decision router.RouteDecision
}

func (s *stubClassifier) Classify(ctx context.Context, text string) router.RouteDecision {
	return s.decision
}

type stubRouter struct {
	state    router.State
	decision router.RouteDecision
}

func (s *stubRouter) Route(ctx context.Context, state router.State) router.RouteDecision {
	s.state = state
	return s.decision
}

type stubDispatcher struct {
	turn  *agent.Turn
	reply *agent.Reply
	err   error
}

func (s *stubDispatcher) Dispatch(ctx context.Context, turn *agent.Turn) (*agent.Reply, error) {
	s.turn = turn
	return s.reply, s.err
}

type stubWorkflow struct {
	active      bool
	awaiting    bool
	activeErr   error
	awaitingErr error
}

func (s *stubWorkflow) Active(ctx context.Context, scope model.Scope) (bool, error) {
	return s.active, s.activeErr
}

func (s *stubWorkflow) Awaiting(ctx context.Context, scope model.Scope) (bool, error) {
	return s.awaiting, s.awaitingErr
}

func newUseCase(cls *stubClassifier, rt *stubRouter, disp *stubDispatcher, workflows map[model.WorkflowKind]Workflow) *implUseCase {
	return New(window.New(0, nil, log.NewNop()), cls, rt, disp, workflows, 0, log.NewNop())
}

func defaultStubs(handler string) (*stubClassifier, *stubRouter, *stubDispatcher) {
	cls := &stubClassifier{decision: router.RouteDecision{IntentCategory: router.CategoryGeneral, Confidence: 0.2}}
	rt := &stubRouter{decision: router.RouteDecision{IntentCategory: router.CategoryGeneral, TargetHandler: handler}}
	disp := &stubDispatcher{reply: &agent.Reply{Handler: handler, Text: "hello"}}
	return cls, rt, disp
}

func TestChatValidation(t *testing.T) {
	ctx := context.Background()
	cls, rt, disp := defaultStubs(router.HandlerDefault)
	uc := newUseCase(cls, rt, disp, nil)

	t.Run("empty message", func(t *testing.T) {
		if _, err := uc.Chat(ctx, chat.ChatInput{UserID: "u", ConversationID: "c", Message: "   "}); !errors.Is(err, chat.ErrEmptyMessage) {
			t.Errorf("expected ErrEmptyMessage, got %v", err)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		if _, err := uc.Chat(ctx, chat.ChatInput{ConversationID: "c", Message: "hi"}); !errors.Is(err, chat.ErrInvalidScope) {
			t.Errorf("expected ErrInvalidScope, got %v", err)
		}
	})
}

func TestChatPipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("active workflow pins extraction and validation", func(t *testing.T) {
		cls, rt, disp := defaultStubs(router.HandlerError)
		cls.decision = router.RouteDecision{IntentCategory: router.CategoryEducation, Confidence: 0.9}
		uc := newUseCase(cls, rt, disp, map[model.WorkflowKind]Workflow{
			model.KindSwap: &stubWorkflow{active: true},
		})

		out, err := uc.Chat(ctx, chat.ChatInput{
			UserID: "u", ConversationID: "c",
			Message: "swap 20000000 USDC for ETH",
		})
		if err != nil {
			t.Fatalf("chat: %v", err)
		}
		if rt.state.ActiveKind != model.KindSwap {
			t.Errorf("active kind not propagated, got %q", rt.state.ActiveKind)
		}
		if len(rt.state.PreflightErrors) == 0 || len(disp.turn.PreflightErrors) == 0 {
			t.Error("ceiling violation must reach both router and handler")
		}
		if out.Handler != router.HandlerError {
			t.Errorf("unexpected handler %q", out.Handler)
		}
	})

	t.Run("stateless category skips validation", func(t *testing.T) {
		cls, rt, disp := defaultStubs(router.HandlerEducation)
		cls.decision = router.RouteDecision{IntentCategory: router.CategoryEducation, Confidence: 0.9}
		uc := newUseCase(cls, rt, disp, nil)

		if _, err := uc.Chat(ctx, chat.ChatInput{UserID: "u", ConversationID: "c", Message: "what is staking? 99999999999 reasons to know"}); err != nil {
			t.Fatalf("chat: %v", err)
		}
		if len(disp.turn.PreflightErrors) != 0 {
			t.Errorf("no validation expected, got %v", disp.turn.PreflightErrors)
		}
	})

	t.Run("classification feeds routing without a second pass", func(t *testing.T) {
		cls, rt, disp := defaultStubs(router.HandlerLending)
		cls.decision = router.RouteDecision{IntentCategory: router.CategoryLending, Confidence: 0.85}
		uc := newUseCase(cls, rt, disp, nil)

		if _, err := uc.Chat(ctx, chat.ChatInput{UserID: "u", ConversationID: "c", Message: "supply 100 USDC"}); err != nil {
			t.Fatalf("chat: %v", err)
		}
		if rt.state.Category != router.CategoryLending || rt.state.Confidence != 0.85 {
			t.Errorf("classification not propagated: %+v", rt.state)
		}
	})

	t.Run("probe failure reads as inactive", func(t *testing.T) {
		cls, rt, disp := defaultStubs(router.HandlerDefault)
		uc := newUseCase(cls, rt, disp, map[model.WorkflowKind]Workflow{
			model.KindSwap: &stubWorkflow{activeErr: errors.New("store down"), awaitingErr: errors.New("store down")},
		})

		if _, err := uc.Chat(ctx, chat.ChatInput{UserID: "u", ConversationID: "c", Message: "hello"}); err != nil {
			t.Fatalf("probe failure must not fail the turn: %v", err)
		}
		if rt.state.ActiveKind != "" || rt.state.AwaitingKind != "" {
			t.Errorf("failed probe must read inactive: %+v", rt.state)
		}
	})

	t.Run("dispatch failure propagates", func(t *testing.T) {
		cls, rt, disp := defaultStubs(router.HandlerDefault)
		disp.reply, disp.err = nil, errors.New("handler blew up")
		uc := newUseCase(cls, rt, disp, nil)

		if _, err := uc.Chat(ctx, chat.ChatInput{UserID: "u", ConversationID: "c", Message: "hi"}); err == nil {
			t.Error("expected dispatch error")
		}
	})

	t.Run("reply is sanitized", func(t *testing.T) {
		cls, rt, disp := defaultStubs(router.HandlerDefault)
		disp.reply = &agent.Reply{Handler: router.HandlerDefault, Text: "Done. transferred_to_swap_agent  Anything else?"}
		uc := newUseCase(cls, rt, disp, nil)

		out, err := uc.Chat(ctx, chat.ChatInput{UserID: "u", ConversationID: "c", Message: "hi"})
		if err != nil {
			t.Fatalf("chat: %v", err)
		}
		if out.Reply != "Done. Anything else?" {
			t.Errorf("unexpected reply %q", out.Reply)
		}
	})
}

func TestSanitizeReply(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain reply", "plain reply"},
		{"transfer_to_lending_agent ok", "ok"},
		{"ok  then   fine", "ok then fine"},
		{"line one  \nline two", "line one\nline two"},
	}
	for _, tc := range cases {
		if got := sanitizeReply(tc.in); got != tc.want {
			t.Errorf("sanitizeReply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
