package chat

import (
	"fmt"
	"strings"

	"culture-chat-api/internal/domain/entity"
)

// 身份与心情模板的回复很短，预算固定；
// 专家模板的预算走配置（chat.generation_max_tokens）。
const (
	identityMaxTokens      = 60
	moodMaxTokens          = 50
	defaultExpertMaxTokens = 80
)

const (
	identityPrompt = "tu es un assistant spécialisé dans la recommandation de films, de livres et de music. dites-moi ce que vous recherchez!"
	moodPrompt     = "Someone asks how you are. Respond briefly and enthusiastically, then ask what they're looking for today (movies, books, music). Keep it under 2 sentences:\n\nResponse:"
)

// expertContext 类别到提示词语境的映射
func expertContext(category entity.Category) string {
	switch category {
	case entity.CategoryFilms:
		return "movies and cinema"
	case entity.CategoryLivres:
		return "books and literature"
	case entity.CategoryMusiques:
		return "music and songs"
	}
	return "cultural content"
}

// buildPrompt 按模板类别组装提示词，返回提示词、token 预算和回复前缀
// expertBudget 非正值时使用默认预算。
func buildPrompt(kind PromptKind, category entity.Category, message string, history []entity.ConversationTurn, historyLimit, expertBudget int) (prompt string, maxTokens int, prefix string) {
	switch kind {
	case PromptIdentity:
		return identityPrompt, identityMaxTokens, "🤖 "
	case PromptMood:
		return moodPrompt, moodMaxTokens, "😊 "
	case PromptExpert:
		if expertBudget <= 0 {
			expertBudget = defaultExpertMaxTokens
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("You are a cultural expert. Answer this question about %s in a friendly, concise way (2-3 sentences max):\n\n", expertContext(category)))
		if lines := historyLines(history, historyLimit); lines != "" {
			sb.WriteString("Conversation so far:\n")
			sb.WriteString(lines)
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Question: %s\n\nAnswer:", message))
		return sb.String(), expertBudget, "💭 "
	}
	return "", 0, ""
}

// historyLines 将最近的会话轮渲染为提示词上下文
func historyLines(history []entity.ConversationTurn, limit int) string {
	if limit <= 0 || len(history) == 0 {
		return ""
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	var sb strings.Builder
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		switch turn.Role {
		case entity.RoleUser:
			sb.WriteString("User: ")
		case entity.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String()
}
