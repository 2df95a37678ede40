package chat

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Chat runs one conversation turn through the full pipeline:
	// windowing, extraction, validation, routing and handling.
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)
}
