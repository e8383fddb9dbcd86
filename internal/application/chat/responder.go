package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"culture-chat-api/internal/domain/service"
	"culture-chat-api/pkg/logger"
	"culture-chat-api/pkg/metrics"
)

// ErrGenerationDisabled 表示生成模型未配置
var ErrGenerationDisabled = errors.New("generative responder is disabled")

// ModelProvider 惰性提供 ChatModel 实例
type ModelProvider interface {
	Default(ctx context.Context) (model.BaseChatModel, error)
	Configured() bool
}

// ReplyCache 生成回复缓存的可选依赖
// GetOrLoad 未命中时调用 loader 生成并写回，同一 key 的并发请求
// 由实现合并为一次生成。
type ReplyCache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (string, error)) (value string, hit bool, err error)
}

// Responder 生成式回复器
// 模型调用带超时上限；任何失败都作为软失败返回错误，由调用方
// 替换为固定兜底文案，从不向上层传播。
type Responder struct {
	provider ModelProvider
	cache    ReplyCache
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewResponder 创建生成回复器；provider 为 nil 时处于禁用模式
func NewResponder(provider ModelProvider, cache ReplyCache, timeout, cacheTTL time.Duration) *Responder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Responder{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

// Enabled 报告生成路径是否可用
func (r *Responder) Enabled() bool {
	return r != nil && r.provider != nil && r.provider.Configured()
}

// Generate 以给定提示词和 token 预算生成一段文本
// 输出经过后处理：去除提示词回显、截断到 3 句、补齐句末标点。
// 配置了缓存时走 Read-Through 路径，相同提示词的并发请求合并为一次生成。
func (r *Responder) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !r.Enabled() {
		return "", ErrGenerationDisabled
	}

	if r.cache == nil || r.cacheTTL <= 0 {
		return r.generate(ctx, prompt, maxTokens)
	}

	out, hit, err := r.cache.GetOrLoad(ctx, promptCacheKey(prompt, maxTokens), r.cacheTTL, func() (string, error) {
		return r.generate(ctx, prompt, maxTokens)
	})
	if err != nil {
		return "", err
	}
	if hit {
		metrics.ReplyCacheTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.ReplyCacheTotal.WithLabelValues("miss").Inc()
	}
	return out, nil
}

func (r *Responder) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// workflow 标签供 Eino 观测回调使用
	ctx = service.WithWorkflow(ctx, "chat_reply")

	chatModel, err := r.provider.Default(ctx)
	if err != nil {
		return "", fmt.Errorf("get chat model: %w", err)
	}

	msg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, model.WithMaxTokens(maxTokens))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn(ctx, "generation timed out", "timeout", r.timeout.String())
		}
		return "", fmt.Errorf("generate: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("empty generation result")
	}

	out := Postprocess(prompt, msg.Content)
	if out == "" {
		return "", fmt.Errorf("generation result empty after postprocessing")
	}
	return out, nil
}

// Postprocess 清理模型原始输出
// 小模型倾向于回显提示词并无限续写，这里去除回显、限制为
// 最多 3 句并保证以句号结尾。
func Postprocess(prompt, raw string) string {
	out := strings.Replace(raw, prompt, "", 1)
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}

	sentences := strings.Split(out, ".")
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	out = strings.TrimSpace(strings.Join(sentences, ". "))
	if out != "" && !strings.HasSuffix(out, ".") && !strings.HasSuffix(out, "!") && !strings.HasSuffix(out, "?") {
		out += "."
	}
	return out
}

func promptCacheKey(prompt string, maxTokens int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%s", maxTokens, prompt))
	return "chat:reply:" + hex.EncodeToString(sum[:])
}
