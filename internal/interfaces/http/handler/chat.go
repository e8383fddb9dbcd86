// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-chat-api/internal/application/chat"
	"culture-chat-api/internal/config"
	"culture-chat-api/internal/domain/service"
	"culture-chat-api/internal/interfaces/http/dto"
)

// ChatHandler 对话处理器
type ChatHandler struct {
	cfg     *config.Config
	service *chat.Service
}

// NewChatHandler 创建对话处理器
func NewChatHandler(cfg *config.Config, svc *chat.Service) *ChatHandler {
	return &ChatHandler{
		cfg:     cfg,
		service: svc,
	}
}

// Chat 处理一轮对话
// @Summary 发送消息并获取回复
// @Description 规则意图、向量检索与生成式回复的混合对话入口
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body dto.ChatRequest true "对话请求"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// provider 标签供 Eino 观测回调使用
	ctx = service.WithProvider(ctx, h.cfg.LLM.DefaultProvider)

	reply := h.service.HandleMessage(ctx, req.ToChatRequest())
	c.JSON(http.StatusOK, dto.ToChatResponse(reply))
}
