package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Panorama-Block/zico-agents-sub000/internal/chat"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/response"
)

// respondError translates use-case errors into HTTP responses. Unknown
// errors stay opaque to the client.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrInvalidScope):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
