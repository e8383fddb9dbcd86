package handler

import (
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"culture-chat-api/internal/application/chat"
	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/internal/interfaces/http/dto"
)

const (
	catalogSampleSize  = 10
	catalogSearchLimit = 5
)

// CatalogHandler 目录浏览处理器
// 随机样本的随机源可注入种子以便复现。
type CatalogHandler struct {
	store     repository.CatalogStore
	lexical   *search.Lexical
	engine    *search.Engine
	responder *chat.Responder

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalogHandler 创建目录浏览处理器；seed 为 0 时按当前时间播种
func NewCatalogHandler(store repository.CatalogStore, lexical *search.Lexical, engine *search.Engine, responder *chat.Responder, seed int64) *CatalogHandler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &CatalogHandler{
		store:     store,
		lexical:   lexical,
		engine:    engine,
		responder: responder,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Films 浏览电影目录
// @Summary 浏览电影目录
// @Description 带 titre 参数时做关键词检索，否则返回随机样本
// @Tags Catalogue
// @Produce json
// @Param titre query string false "标题关键词"
// @Success 200 {array} dto.CatalogItemResponse
// @Router /v1/films [get]
func (h *CatalogHandler) Films(c *gin.Context) {
	h.list(c, entity.CategoryFilms)
}

// Livres 浏览图书目录
// @Summary 浏览图书目录
// @Tags Catalogue
// @Produce json
// @Param titre query string false "标题关键词"
// @Success 200 {array} dto.CatalogItemResponse
// @Router /v1/livres [get]
func (h *CatalogHandler) Livres(c *gin.Context) {
	h.list(c, entity.CategoryLivres)
}

// Musiques 浏览音乐目录
// @Summary 浏览音乐目录
// @Tags Catalogue
// @Produce json
// @Param titre query string false "标题关键词"
// @Success 200 {array} dto.CatalogItemResponse
// @Router /v1/musiques [get]
func (h *CatalogHandler) Musiques(c *gin.Context) {
	h.list(c, entity.CategoryMusiques)
}

func (h *CatalogHandler) list(c *gin.Context, category entity.Category) {
	titre := strings.TrimSpace(c.Query("titre"))
	if titre != "" {
		items := h.lexical.Search(category, search.Keywords(titre), catalogSearchLimit)
		c.JSON(http.StatusOK, dto.ToCatalogItemResponses(items))
		return
	}

	c.JSON(http.StatusOK, dto.ToCatalogItemResponses(h.sampleItems(h.store.Items(category), catalogSampleSize)))
}

// Stats 目录统计
// @Summary 目录统计
// @Tags Debug
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /v1/stats [get]
func (h *CatalogHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, &dto.StatsResponse{
		Films:         h.categoryStats(entity.CategoryFilms),
		Livres:        h.categoryStats(entity.CategoryLivres),
		Musiques:      h.categoryStats(entity.CategoryMusiques),
		LLMActive:     h.responder.Enabled(),
		EncoderActive: h.engine.Enabled(),
	})
}

func (h *CatalogHandler) categoryStats(category entity.Category) *dto.CategoryStats {
	items := h.store.Items(category)
	sample := make([]string, 0, 3)
	for i := 0; i < len(items) && i < 3; i++ {
		sample = append(sample, items[i].Titre)
	}
	return &dto.CategoryStats{
		Count:  len(items),
		Sample: sample,
	}
}

func (h *CatalogHandler) sampleItems(items []entity.CatalogItem, n int) []entity.CatalogItem {
	if len(items) <= n {
		return items
	}
	sampled := make([]entity.CatalogItem, len(items))
	copy(sampled, items)

	h.mu.Lock()
	h.rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	h.mu.Unlock()
	return sampled[:n]
}
