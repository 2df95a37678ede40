package router

import (
	"context"
	"strings"

	"github.com/Panorama-Block/zico-agents-sub000/pkg/llmprovider"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// Router resolves a per-turn routing decision: deterministic rules first,
// a single constrained model call only as last resort.
type Router struct {
	classifier *Classifier
	llm        *llmprovider.Manager
	logger     log.Logger
}

// New creates a router. llm may be nil; disambiguation then collapses to
// the default handler.
func New(classifier *Classifier, llm *llmprovider.Manager, logger log.Logger) *Router {
	return &Router{
		classifier: classifier,
		llm:        llm,
		logger:     logger,
	}
}

// Route classifies the utterance, runs the decision rules, and falls back
// to the disambiguator when nothing else resolves. It always returns a
// usable decision. Callers that already classified the text may set
// s.Category to skip the second embedding call.
func (r *Router) Route(ctx context.Context, s State) RouteDecision {
	if s.Category == "" {
		classified := r.classifier.Classify(ctx, s.Text)
		s.Category = classified.IntentCategory
		s.Confidence = classified.Confidence
	}

	if decision, ok := Decide(s); ok {
		return decision
	}

	return r.disambiguate(ctx, s)
}

const disambiguatorInstruction = `You route user messages for a DeFi assistant.
Reply with exactly one of these handler names and nothing else:
%HANDLERS%
Pick the handler that best fits the user's message.`

// disambiguate asks the model to pick a handler name. The output is used
// only as a string key; anything outside the fixed set collapses to the
// default handler.
func (r *Router) disambiguate(ctx context.Context, s State) RouteDecision {
	fallback := RouteDecision{
		IntentCategory: CategoryGeneral,
		Confidence:     s.Confidence,
		TargetHandler:  HandlerDefault,
	}

	if r.llm == nil {
		return fallback
	}

	instruction := strings.Replace(disambiguatorInstruction, "%HANDLERS%", strings.Join(HandlerNames(), "\n"), 1)
	resp, err := r.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: instruction}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: s.Text}}},
		},
		Temperature: 0,
		MaxTokens:   16,
	})
	if err != nil {
		r.logger.Warn(ctx, "disambiguation failed, using default handler", "error", err.Error())
		return fallback
	}

	name := strings.ToLower(strings.TrimSpace(resp.Text()))
	for _, known := range HandlerNames() {
		if name == known {
			fallback.TargetHandler = known
			fallback.IntentCategory = categoryForHandler(known)
			return fallback
		}
	}

	r.logger.Warn(ctx, "disambiguator returned unknown handler, using default", "handler", name)
	return fallback
}

func categoryForHandler(handler string) Category {
	for category, h := range handlerForCategory {
		if h == handler {
			return category
		}
	}
	return CategoryGeneral
}
