package chat

import (
	"context"
	"strings"
	"time"

	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/pkg/logger"
	"culture-chat-api/pkg/metrics"
)

// Service 对话服务
// 按严格优先级执行规则，仅开放问题进入生成路径。
// 无状态：历史由调用方携带，服务只读不存。
type Service struct {
	classifier *Classifier
	engine     *search.Engine
	responder  *Responder
	composer   *Composer

	topK         int
	historyLimit int
	maxTokens    int
}

// NewService 创建对话服务
func NewService(classifier *Classifier, engine *search.Engine, responder *Responder, composer *Composer, topK, historyLimit, maxTokens int) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{
		classifier:   classifier,
		engine:       engine,
		responder:    responder,
		composer:     composer,
		topK:         topK,
		historyLimit: historyLimit,
		maxTokens:    maxTokens,
	}
}

// HandleMessage 处理一条用户消息
// 所有失败都在内部恢复为用户可见文案，从不向调用方抛错。
func (s *Service) HandleMessage(ctx context.Context, req Request) *Reply {
	start := time.Now()

	message := strings.TrimSpace(req.Message)
	var reply *Reply
	intent := entity.IntentUnknown

	if message == "" {
		// 畸形请求归一化为未知意图的兜底回复，不拒绝
		reply = s.composer.ConversationReply(s.classifier.FallbackReply(), false)
	} else {
		var kind PromptKind
		intent, kind = s.classifier.Classify(message, req.Category)

		switch intent {
		case entity.IntentGreeting:
			reply = s.composer.ConversationReply(s.classifier.GreetingReply(), false)
		case entity.IntentThanks:
			reply = s.composer.ConversationReply(s.classifier.ThanksReply(), false)
		case entity.IntentSearch:
			reply = s.handleSearch(ctx, message, req.Category)
			intent = refineSearchIntent(reply)
		case entity.IntentOpenQuestion:
			reply = s.handleOpenQuestion(ctx, kind, message, req)
		default:
			reply = s.composer.ConversationReply(s.classifier.FallbackReply(), false)
		}
	}

	reply.Intent = intent
	metrics.ChatMessagesTotal.WithLabelValues(string(intent), reply.Type).Inc()
	metrics.ChatMessageDuration.WithLabelValues(string(intent)).Observe(time.Since(start).Seconds())
	logger.Info(ctx, "chat message handled",
		"intent", intent,
		"reply_type", reply.Type,
		"items", len(reply.Items),
		"generative", reply.UsedGenerativeModel,
	)
	return reply
}

// refineSearchIntent 按检索结果细分检索意图；错误回复保持粗粒度
func refineSearchIntent(reply *Reply) entity.Intent {
	switch {
	case reply.Type == ReplyTypeError:
		return entity.IntentSearch
	case len(reply.Items) > 0:
		return entity.IntentSearchResults
	default:
		return entity.IntentSearchNoResults
	}
}

func (s *Service) handleSearch(ctx context.Context, message string, category entity.Category) *Reply {
	result, err := s.engine.Search(ctx, search.Query{
		RawText:  message,
		Category: category,
		TopK:     s.topK,
	})
	if err != nil {
		logger.Error(ctx, "retrieval failed", err, "category", category)
		return s.composer.ErrorReply(s.classifier.ErrorReply())
	}

	// 回复文案使用未回退的关键词序列，空序列走泛化致歉分支
	keywords := search.Normalize(message)
	if len(result.Hits) > 0 {
		return s.composer.SearchResultsReply(category, keywords, result.Hits)
	}
	return s.composer.NoResultsReply(category, keywords)
}

func (s *Service) handleOpenQuestion(ctx context.Context, kind PromptKind, message string, req Request) *Reply {
	prompt, maxTokens, prefix := buildPrompt(kind, req.Category, message, req.History, s.historyLimit, s.maxTokens)
	if prompt == "" || !s.responder.Enabled() {
		return s.composer.ConversationReply(s.classifier.FallbackReply(), false)
	}

	text, err := s.responder.Generate(ctx, prompt, maxTokens)
	if err != nil {
		// 生成失败是软失败：替换为固定兜底文案
		logger.Warn(ctx, "generation failed, using fallback reply", "kind", kind, "error", err)
		return s.composer.ConversationReply(s.classifier.FallbackReply(), false)
	}
	return s.composer.ConversationReply(prefix+text, true)
}
