package chat

import (
	"testing"

	"culture-chat-api/internal/domain/entity"
)

func TestClassifyPriorities(t *testing.T) {
	c := NewClassifier(1)

	tests := []struct {
		name     string
		message  string
		category entity.Category
		want     entity.Intent
		wantKind PromptKind
	}{
		{"single greeting word", "Bonjour", entity.CategoryFilms, entity.IntentGreeting, PromptNone},
		{"short greeting", "salut ça va", entity.CategoryFilms, entity.IntentGreeting, PromptNone},
		{"long message with greeting word is not greeting", "bonjour je cherche un film de science-fiction", entity.CategoryFilms, entity.IntentSearch, PromptNone},
		{"thanks", "merci beaucoup", entity.CategoryFilms, entity.IntentThanks, PromptNone},
		{"thanks wins over search trigger", "super idée merci", entity.CategoryFilms, entity.IntentThanks, PromptNone},
		{"search with category", "je cherche un film de science-fiction", entity.CategoryFilms, entity.IntentSearch, PromptNone},
		{"search trigger without category", "je cherche quelque chose", "general", entity.IntentUnknown, PromptNone},
		{"identity question", "qui es-tu exactement dis moi", entity.CategoryFilms, entity.IntentOpenQuestion, PromptIdentity},
		// "comment" 含触发词 "comme"：类别有效时优先判为检索
		{"mood question without category", "dis moi comment vas-tu aujourd'hui mon ami", "general", entity.IntentOpenQuestion, PromptMood},
		{"mood question with category is search", "dis moi comment vas-tu aujourd'hui mon ami", entity.CategoryFilms, entity.IntentSearch, PromptNone},
		{"open advice question", "pourquoi ce réalisateur est-il si célèbre dans le monde", entity.CategoryFilms, entity.IntentOpenQuestion, PromptExpert},
		{"unmatched message", "la pluie tombe fort aujourd'hui dans le nord", "general", entity.IntentUnknown, PromptNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind := c.Classify(tt.message, tt.category)
			if got != tt.want {
				t.Errorf("Classify(%q) intent = %s, want %s", tt.message, got, tt.want)
			}
			if kind != tt.wantKind {
				t.Errorf("Classify(%q) kind = %q, want %q", tt.message, kind, tt.wantKind)
			}
		})
	}
}

func TestClassifyGreetingTokenLimit(t *testing.T) {
	c := NewClassifier(1)

	// 正好 3 个词仍是问候
	if intent, _ := c.Classify("hey salut toi", entity.CategoryFilms); intent != entity.IntentGreeting {
		t.Errorf("3-token greeting classified as %s", intent)
	}
	// 4 个词不再是问候
	if intent, _ := c.Classify("hey vraiment pas mal", entity.CategoryFilms); intent == entity.IntentGreeting {
		t.Error("4-token message should not be a greeting")
	}
}

func TestThanksReplyDeterministicWithSeed(t *testing.T) {
	first := NewClassifier(42)
	second := NewClassifier(42)

	for i := 0; i < 10; i++ {
		a := first.ThanksReply()
		b := second.ThanksReply()
		if a != b {
			t.Fatalf("same seed diverged at draw %d: %q vs %q", i, a, b)
		}
	}
}

func TestThanksReplyFromFixedSet(t *testing.T) {
	c := NewClassifier(7)
	valid := make(map[string]bool, len(thanksReplies))
	for _, r := range thanksReplies {
		valid[r] = true
	}
	for i := 0; i < 20; i++ {
		if reply := c.ThanksReply(); !valid[reply] {
			t.Fatalf("unexpected thanks reply: %q", reply)
		}
	}
}

func TestSearchAllowsAllCategory(t *testing.T) {
	c := NewClassifier(1)
	if intent, _ := c.Classify("recommande moi une histoire captivante", entity.CategoryAll); intent != entity.IntentSearch {
		t.Errorf("all-category search classified as %s", intent)
	}
}
