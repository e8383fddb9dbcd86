//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/config"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/internal/infrastructure/catalog"
	"culture-chat-api/internal/interfaces/http/handler"
	"culture-chat-api/internal/interfaces/http/router"
)

// CatalogSet 目录数据提供者集合
var CatalogSet = wire.NewSet(
	ProvideCatalogStore,
	wire.Bind(new(repository.CatalogStore), new(*catalog.Store)),
)

// SearchSet 检索提供者集合
var SearchSet = wire.NewSet(
	ProvideEmbedderOptional,
	ProvideIndexer,
	ProvideIndexes,
	search.NewLexical,
	ProvideEngine,
)

// RedisSet Redis 提供者集合（可选，缺席时缓存与限流关闭）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideReplyCache,
	ProvideRateLimiter,
)

// ChatSet 对话提供者集合
var ChatSet = wire.NewSet(
	ProvideClassifier,
	ProvideModelProvider,
	ProvideResponder,
	ProvideChatService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewChatHandler,
	ProvideCatalogHandler,
	ProvideHandlers,
	router.New,
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		CatalogSet,
		SearchSet,
		RedisSet,
		ChatSet,
		RouterSet,
	)
	return nil, nil, nil
}
