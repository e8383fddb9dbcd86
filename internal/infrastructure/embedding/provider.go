package embedding

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino/components/embedding"

	"culture-chat-api/internal/config"
)

// NewEmbedder 按配置创建编码器
// provider 为 custom 时使用自托管 HTTP 客户端，否则使用 Eino 的
// OpenAI 兼容适配器。endpoint 未配置视为编码器缺席，由调用方降级。
func NewEmbedder(ctx context.Context, cfg *config.EmbeddingConfig) (embedding.Embedder, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint is required")
	}

	if cfg.Provider == "custom" {
		return NewClient(cfg), nil
	}

	embedder, err := openai.NewEmbedder(ctx, &openai.EmbeddingConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.Endpoint,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino embedder: %w", err)
	}

	return embedder, nil
}
