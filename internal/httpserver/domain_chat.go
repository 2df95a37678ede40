package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	chatHTTP "github.com/Panorama-Block/zico-agents-sub000/internal/chat/delivery/http"
	"github.com/Panorama-Block/zico-agents-sub000/internal/middleware"
)

// setupChatDomain registers the chat domain routes. The use case arrives
// fully wired from main; only the delivery layer is built here.
func (srv HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup, _ middleware.Middleware) error {
	h := chatHTTP.New(srv.l, srv.chatUC)
	chatHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Chat domain registered at POST /api/v1/chat")
	return nil
}
