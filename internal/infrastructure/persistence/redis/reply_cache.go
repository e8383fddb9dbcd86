package redis

import (
	"context"
	"encoding/json"
	"time"

	"culture-chat-api/internal/application/chat"
	"culture-chat-api/pkg/logger"
)

// ReplyCache 生成回复缓存的 Redis 适配器
// 未命中时经 singleflight 合并同一提示词的并发生成；
// 缓存故障退化为直接生成，读写失败从不影响对话链路。
type ReplyCache struct {
	cache *Cache
}

var _ chat.ReplyCache = (*ReplyCache)(nil)

// NewReplyCache 创建生成回复缓存
func NewReplyCache(client *Client) *ReplyCache {
	return &ReplyCache{cache: NewCache(client)}
}

// GetOrLoad 实现 chat.ReplyCache
func (r *ReplyCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (string, error)) (string, bool, error) {
	loaded := false
	raw, err := r.cache.GetOrLoadSafe(ctx, key, ttl, func() (interface{}, error) {
		loaded = true
		return loader()
	})
	if err != nil {
		if loaded {
			// loader 自身的失败原样上抛，由对话层换成兜底文案
			return "", false, err
		}
		logger.Warn(ctx, "reply cache unavailable, generating without cache", "key", key, "error", err)
		text, lerr := loader()
		return text, false, lerr
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		logger.Warn(ctx, "reply cache entry malformed", "key", key, "error", err)
		text, lerr := loader()
		return text, false, lerr
	}
	return text, !loaded, nil
}

// InvalidateAll 使全部缓存回复失效
func (r *ReplyCache) InvalidateAll(ctx context.Context) error {
	return r.cache.InvalidateReplies(ctx)
}
