package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"culture-chat-api/internal/application/chat"
	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	store     repository.CatalogStore
	engine    *search.Engine
	responder *chat.Responder
	redis     *redis.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(store repository.CatalogStore, engine *search.Engine, responder *chat.Responder, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		store:     store,
		engine:    engine,
		responder: responder,
		redis:     redisClient,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string                  `json:"status"`
	LLM     string                  `json:"llm"`
	Encoder string                  `json:"encoder"`
	Stats   map[entity.Category]int `json:"stats"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态与降级情况
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		LLM:     activeLabel(h.responder.Enabled()),
		Encoder: activeLabel(h.engine.Enabled()),
		Stats:   h.store.Counts(),
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"catalog": {Status: "unknown"},
		"encoder": {Status: "disabled"},
		"llm":     {Status: "disabled"},
		"redis":   {Status: "disabled"},
	}

	ready := true

	// 目录（必需）：空目录无法提供任何检索
	if h == nil || h.store == nil {
		checks["catalog"].Status = "missing"
		checks["catalog"].Error = "catalog store not configured"
		ready = false
	} else {
		total := 0
		for _, n := range h.store.Counts() {
			total += n
		}
		if total == 0 {
			checks["catalog"].Status = "error"
			checks["catalog"].Error = "catalog is empty"
			ready = false
		} else {
			checks["catalog"].Status = "ok"
		}
	}

	// 编码器（可选）：缺席时词法检索兜底，不影响就绪态
	if h != nil && h.engine != nil && h.engine.Enabled() {
		checks["encoder"].Status = "ok"
	} else {
		checks["encoder"].Status = "degraded"
	}

	// 生成模型（可选）：缺席时规则回复兜底
	if h != nil && h.responder != nil && h.responder.Enabled() {
		checks["llm"].Status = "ok"
	} else {
		checks["llm"].Status = "degraded"
	}

	// Redis（可选）：缓存与限流缺席时直接放行
	if h != nil && h.redis != nil {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "degraded"
			checks["redis"].Error = err.Error()
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func activeLabel(enabled bool) string {
	if enabled {
		return "active"
	}
	return "inactive"
}
