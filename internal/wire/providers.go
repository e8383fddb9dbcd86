// Package wire 提供依赖注入配置
package wire

import (
	"context"

	einoembedding "github.com/cloudwego/eino/components/embedding"

	"culture-chat-api/internal/application/chat"
	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/config"
	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/internal/infrastructure/catalog"
	infraembedding "culture-chat-api/internal/infrastructure/embedding"
	"culture-chat-api/internal/infrastructure/llm"
	"culture-chat-api/internal/infrastructure/persistence/redis"
	"culture-chat-api/internal/interfaces/http/handler"
	"culture-chat-api/internal/interfaces/http/middleware"
	"culture-chat-api/internal/interfaces/http/router"
	"culture-chat-api/pkg/logger"
	"culture-chat-api/pkg/metrics"
)

// ProvideCatalogStore 加载 CSV 目录，目录缺失时启动失败
func ProvideCatalogStore(ctx context.Context, cfg *config.Config) (*catalog.Store, error) {
	return catalog.NewStore(ctx, &cfg.Catalog)
}

// ProvideEmbedderOptional 提供可选 Embedder（不可用时向量检索降级）
func ProvideEmbedderOptional(ctx context.Context, cfg *config.Config) einoembedding.Embedder {
	embedder, err := infraembedding.NewEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		logger.Warn(ctx, "embedding not available, vector search disabled", "error", err.Error())
		return nil
	}
	return embedder
}

// ProvideIndexer 提供向量索引构建器
func ProvideIndexer(cfg *config.Config, embedder einoembedding.Embedder) *search.Indexer {
	return search.NewIndexer(embedder, cfg.Embedding.Dimension, cfg.Embedding.BatchSize)
}

// ProvideIndexes 启动时全量构建向量索引
// 编码器缺席或构建失败时返回 nil 索引，引擎退化为词法检索。
func ProvideIndexes(ctx context.Context, indexer *search.Indexer, store *catalog.Store) map[entity.Category]*search.Index {
	if !indexer.Enabled() {
		metrics.EncoderDegraded.Set(1)
		return nil
	}
	indexes, err := indexer.BuildAll(ctx, store)
	if err != nil {
		logger.Warn(ctx, "vector index build failed, lexical fallback active", "error", err.Error())
		metrics.EncoderDegraded.Set(1)
		return nil
	}
	return indexes
}

// ProvideEngine 提供检索引擎
func ProvideEngine(cfg *config.Config, indexer *search.Indexer, indexes map[entity.Category]*search.Index, lexical *search.Lexical, store repository.CatalogStore) *search.Engine {
	return search.NewEngine(indexer, indexes, lexical, store, cfg.Chat.ScoreThreshold)
}

// ProvideRedisClientOptional 提供可选 Redis 客户端
// 未启用或不可达时返回 nil，回复缓存与限流整体关闭。
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func()) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, reply cache and rate limiting disabled", "error", err.Error())
		return nil, func() {}
	}
	return client, func() { _ = client.Close() }
}

// ProvideReplyCache 提供生成回复缓存
// 目录快照只在进程启动时重建，上个进程缓存的回复可能基于旧语料，
// 启动时整体失效一次。
func ProvideReplyCache(ctx context.Context, client *redis.Client) chat.ReplyCache {
	if client == nil {
		return nil
	}
	cache := redis.NewReplyCache(client)
	if err := cache.InvalidateAll(ctx); err != nil {
		logger.Warn(ctx, "reply cache invalidation failed", "error", err.Error())
	}
	return cache
}

// ProvideRateLimiter 提供限流器
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideClassifier 提供意图分类器
func ProvideClassifier(cfg *config.Config) *chat.Classifier {
	return chat.NewClassifier(cfg.Chat.RandomSeed)
}

// ProvideModelProvider 提供生成模型工厂
func ProvideModelProvider(cfg *config.Config) chat.ModelProvider {
	return llm.NewEinoFactory(cfg)
}

// ProvideResponder 提供生成回复器
func ProvideResponder(cfg *config.Config, provider chat.ModelProvider, cache chat.ReplyCache) *chat.Responder {
	return chat.NewResponder(provider, cache, cfg.Chat.GenerationTimeout, cfg.Chat.ReplyCacheTTL)
}

// ProvideChatService 提供对话服务
func ProvideChatService(cfg *config.Config, classifier *chat.Classifier, engine *search.Engine, responder *chat.Responder) *chat.Service {
	return chat.NewService(classifier, engine, responder, chat.NewComposer(),
		cfg.Chat.TopK, cfg.Chat.HistoryLimit, cfg.Chat.GenerationMaxTokens)
}

// ProvideCatalogHandler 提供目录浏览处理器，随机样本与感谢语共用同一种子
func ProvideCatalogHandler(cfg *config.Config, store repository.CatalogStore, lexical *search.Lexical, engine *search.Engine, responder *chat.Responder) *handler.CatalogHandler {
	return handler.NewCatalogHandler(store, lexical, engine, responder, cfg.Chat.RandomSeed)
}

// ProvideHandlers 汇总全部 HTTP 处理器
func ProvideHandlers(
	healthHandler *handler.HealthHandler,
	chatHandler *handler.ChatHandler,
	catalogHandler *handler.CatalogHandler,
) *router.Handlers {
	return &router.Handlers{
		Health:  healthHandler,
		Chat:    chatHandler,
		Catalog: catalogHandler,
	}
}
