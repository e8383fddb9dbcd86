package chat

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"culture-chat-api/internal/domain/entity"
)

// 规则层的固定词表，全部在小写消息上做子串匹配
var (
	greetingTokens = []string{"bonjour", "salut", "hello", "hey", "coucou", "bonsoir"}
	thanksTokens   = []string{"merci", "thank", "super", "génial", "parfait", "ok", "bien", "d'accord"}
	searchTriggers = []string{
		"cherche", "trouve", "recommand", "suggère", "propose", "veux", "voudrais",
		"conseil", "idée", "parle", "histoire", "genre", "style", "comme",
	}

	identityTokens = []string{"qui es", "tu es", "c'est quoi", "qu'est-ce"}
	openTokens     = []string{"pourquoi", "comment", "conseil", "avis", "opinion", "penses"}
)

// 固定回复文案
const (
	greetingReply = "Bonjour ! Je suis ravi de t'aider à découvrir de super contenus culturels. Tu cherches un film, un livre ou de la musique ? 😊"
	fallbackReply = "🤔 Je ne suis pas sûr de comprendre... Tu peux me dire ce que tu cherches ? Par exemple : 'Je veux un film d'action' ou 'Trouve-moi un livre de science-fiction' !"
	errorReply    = "😅 Oups, un problème technique. Peux-tu reformuler ?"
)

var thanksReplies = []string{
	"Avec plaisir ! N'hésite pas si tu as besoin d'autres recommandations 😊",
	"Content d'avoir pu t'aider ! Autre chose ?",
	"De rien ! Je suis là si tu veux d'autres suggestions 🎬📚🎵",
}

// PromptKind 开放问题的提示词模板类别
type PromptKind string

const (
	PromptNone     PromptKind = ""
	PromptIdentity PromptKind = "identity"
	PromptMood     PromptKind = "mood"
	PromptExpert   PromptKind = "expert"
)

// Classifier 意图分类器与规则引擎
// 规则按严格优先级匹配：问候 → 感谢 → 检索 → 开放问题 → 未知。
// 随机性仅存在于感谢回复的选择，随机源可注入种子以便复现。
type Classifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifier 创建分类器；seed 为 0 时按当前时间播种
func NewClassifier(seed int64) *Classifier {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Classifier{rng: rand.New(rand.NewSource(seed))}
}

// Classify 解析单条消息的意图
// 仅读取消息与类别，不读写历史；每条消息独立判定。
func (c *Classifier) Classify(message string, category entity.Category) (entity.Intent, PromptKind) {
	lower := strings.ToLower(message)
	tokenCount := len(strings.Fields(message))

	// 1. 问候：不超过 3 个词且含问候词
	if tokenCount > 0 && tokenCount <= 3 && containsAny(lower, greetingTokens) {
		return entity.IntentGreeting, PromptNone
	}

	// 2. 感谢：不超过 4 个词且含感谢词
	if tokenCount > 0 && tokenCount <= 4 && containsAny(lower, thanksTokens) {
		return entity.IntentThanks, PromptNone
	}

	// 3. 检索：含触发词且类别明确
	if containsAny(lower, searchTriggers) && isSearchableCategory(category) {
		return entity.IntentSearch, PromptNone
	}

	// 4. 开放问题：交给生成模型的三类提示词
	if containsAny(lower, identityTokens) {
		return entity.IntentOpenQuestion, PromptIdentity
	}
	if strings.Contains(lower, "comment") && (strings.Contains(lower, "vas") || strings.Contains(lower, "alles")) {
		return entity.IntentOpenQuestion, PromptMood
	}
	if containsAny(lower, openTokens) {
		return entity.IntentOpenQuestion, PromptExpert
	}

	return entity.IntentUnknown, PromptNone
}

// GreetingReply 返回固定的问候回复
func (c *Classifier) GreetingReply() string {
	return greetingReply
}

// ThanksReply 从固定文案中伪随机选择一条
func (c *Classifier) ThanksReply() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return thanksReplies[c.rng.Intn(len(thanksReplies))]
}

// FallbackReply 返回未知意图或生成失败时的固定回复
func (c *Classifier) FallbackReply() string {
	return fallbackReply
}

// ErrorReply 返回内部故障时的用户可见文案
func (c *Classifier) ErrorReply() string {
	return errorReply
}

func containsAny(lower string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func isSearchableCategory(category entity.Category) bool {
	switch category {
	case entity.CategoryFilms, entity.CategoryLivres, entity.CategoryMusiques, entity.CategoryAll:
		return true
	}
	return false
}
