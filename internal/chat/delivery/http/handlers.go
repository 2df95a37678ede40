package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Panorama-Block/zico-agents-sub000/pkg/response"
)

// Chat godoc
// @Summary     Handle one chat turn
// @Description Routes the message to the right agent, advancing any active workflow.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Chat turn"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Chat(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Chat: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newChatResp(output))
}
