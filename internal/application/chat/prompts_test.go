package chat

import (
	"strings"
	"testing"

	"culture-chat-api/internal/domain/entity"
)

func TestBuildPromptExpertBudget(t *testing.T) {
	tests := []struct {
		name   string
		budget int
		want   int
	}{
		{"configured budget used", 120, 120},
		{"zero budget falls back to default", 0, defaultExpertMaxTokens},
		{"negative budget falls back to default", -1, defaultExpertMaxTokens},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, maxTokens, prefix := buildPrompt(PromptExpert, entity.CategoryFilms, "pourquoi ce film ?", nil, 6, tt.budget)
			if maxTokens != tt.want {
				t.Errorf("maxTokens = %d, want %d", maxTokens, tt.want)
			}
			if !strings.Contains(prompt, "movies and cinema") {
				t.Errorf("expert prompt missing category context: %q", prompt)
			}
			if prefix != "💭 " {
				t.Errorf("prefix = %q", prefix)
			}
		})
	}
}

func TestBuildPromptFixedBudgets(t *testing.T) {
	if _, maxTokens, _ := buildPrompt(PromptIdentity, entity.CategoryAll, "qui es-tu", nil, 6, 120); maxTokens != identityMaxTokens {
		t.Errorf("identity maxTokens = %d, want %d", maxTokens, identityMaxTokens)
	}
	if _, maxTokens, _ := buildPrompt(PromptMood, entity.CategoryAll, "comment vas-tu", nil, 6, 120); maxTokens != moodMaxTokens {
		t.Errorf("mood maxTokens = %d, want %d", maxTokens, moodMaxTokens)
	}
}

func TestBuildPromptExpertIncludesHistory(t *testing.T) {
	history := []entity.ConversationTurn{
		{Role: entity.RoleUser, Content: "bonjour"},
		{Role: entity.RoleAssistant, Content: "Bonjour !"},
	}
	prompt, _, _ := buildPrompt(PromptExpert, entity.CategoryLivres, "un avis sur ce roman ?", history, 6, 0)
	if !strings.Contains(prompt, "User: bonjour") || !strings.Contains(prompt, "Assistant: Bonjour !") {
		t.Errorf("history missing from expert prompt: %q", prompt)
	}
}
