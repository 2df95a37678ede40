// Package window bounds the message history passed downstream, optionally
// collapsing older turns into one synthetic summary note.
package window

import (
	"context"
	"fmt"
	"strings"

	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/llmprovider"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// DefaultMaxRecent is the number of turns kept verbatim.
const DefaultMaxRecent = 8

const summarizerInstruction = "Summarize the following conversation in 2-4 sentences. " +
	"Keep amounts, token symbols, networks and decisions the user already made."

// Windower trims conversation history. The summarizer is best-effort; when
// it is nil or fails, older messages are dropped silently.
type Windower struct {
	maxRecent  int
	summarizer *llmprovider.Manager
	logger     log.Logger
}

// New creates a windower. maxRecent <= 0 falls back to DefaultMaxRecent.
func New(maxRecent int, summarizer *llmprovider.Manager, logger log.Logger) *Windower {
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	return &Windower{
		maxRecent:  maxRecent,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Window returns the messages passed downstream. At most maxRecent turns
// survive verbatim, optionally preceded by one synthetic system note
// summarizing everything older.
func (w *Windower) Window(ctx context.Context, messages []model.Message) []model.Message {
	if len(messages) <= w.maxRecent {
		return messages
	}

	older := messages[:len(messages)-w.maxRecent]
	recent := messages[len(messages)-w.maxRecent:]

	summary, ok := w.summarize(ctx, older)
	if !ok {
		out := make([]model.Message, len(recent))
		copy(out, recent)
		return out
	}

	out := make([]model.Message, 0, len(recent)+1)
	out = append(out, model.Message{
		Role:    model.RoleSystem,
		Content: fmt.Sprintf("Earlier conversation summary: %s", summary),
	})
	return append(out, recent...)
}

func (w *Windower) summarize(ctx context.Context, older []model.Message) (string, bool) {
	if w.summarizer == nil {
		return "", false
	}

	var sb strings.Builder
	for _, m := range older {
		sb.WriteString(string(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}

	resp, err := w.summarizer.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: summarizerInstruction}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: sb.String()}}},
		},
		Temperature: 0,
		MaxTokens:   256,
	})
	if err != nil {
		w.logger.Warn(ctx, "history summarization failed, dropping older messages", "error", err.Error())
		return "", false
	}

	text := resp.Text()
	if text == "" {
		return "", false
	}
	return text, true
}
