package http

import (
	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

type handler struct {
	l  log.Logger
	uc chat.UseCase
}

// New creates the HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
