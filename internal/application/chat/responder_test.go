package chat

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPostprocess(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		raw    string
		want   string
	}{
		{
			name:   "prompt echo stripped",
			prompt: "Question: test\n\nAnswer:",
			raw:    "Question: test\n\nAnswer: La réponse est simple.",
			want:   "La réponse est simple.",
		},
		{
			name:   "truncated to three sentences",
			prompt: "Q:",
			raw:    "Une. Deux. Trois. Quatre. Cinq.",
			want:   "Une.  Deux.  Trois.",
		},
		{
			name:   "terminal punctuation appended",
			prompt: "Q:",
			raw:    "Une réponse sans point final",
			want:   "Une réponse sans point final.",
		},
		{
			name:   "question mark kept",
			prompt: "Q:",
			raw:    "Tu cherches quoi exactement ?",
			want:   "Tu cherches quoi exactement ?",
		},
		{
			name:   "empty output",
			prompt: "Q:",
			raw:    "   ",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Postprocess(tt.prompt, tt.raw); got != tt.want {
				t.Errorf("Postprocess() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponderGenerate(t *testing.T) {
	chatModel := &fakeChatModel{output: "Je recommande des films, des livres et de la musique."}
	r := NewResponder(&fakeProvider{model: chatModel}, nil, time.Second, 0)

	got, err := r.Generate(context.Background(), "prompt", 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got == "" {
		t.Fatal("Generate() returned empty text")
	}
	if chatModel.calls != 1 {
		t.Errorf("model calls = %d, want 1", chatModel.calls)
	}
}

func TestResponderDisabled(t *testing.T) {
	r := NewResponder(nil, nil, time.Second, 0)
	if r.Enabled() {
		t.Fatal("responder without provider should be disabled")
	}
	if _, err := r.Generate(context.Background(), "prompt", 60); !errors.Is(err, ErrGenerationDisabled) {
		t.Errorf("Generate() error = %v, want ErrGenerationDisabled", err)
	}
}

func TestResponderTimeout(t *testing.T) {
	chatModel := &fakeChatModel{output: "trop tard", delay: 200 * time.Millisecond}
	r := NewResponder(&fakeProvider{model: chatModel}, nil, 20*time.Millisecond, 0)

	start := time.Now()
	_, err := r.Generate(context.Background(), "prompt", 60)
	if err == nil {
		t.Fatal("Generate() should fail on timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Generate() blocked for %v despite timeout", elapsed)
	}
}

func TestResponderModelError(t *testing.T) {
	r := NewResponder(&fakeProvider{model: &fakeChatModel{err: errors.New("provider down")}}, nil, time.Second, 0)
	if _, err := r.Generate(context.Background(), "prompt", 60); err == nil {
		t.Fatal("Generate() should propagate model failure as error")
	}
}

func TestResponderCache(t *testing.T) {
	chatModel := &fakeChatModel{output: "Réponse mise en cache."}
	cache := newFakeCache()
	r := NewResponder(&fakeProvider{model: chatModel}, cache, time.Second, time.Minute)

	first, err := r.Generate(context.Background(), "prompt", 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := r.Generate(context.Background(), "prompt", 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if first != second {
		t.Errorf("cached reply differs: %q vs %q", first, second)
	}
	if chatModel.calls != 1 {
		t.Errorf("model calls = %d, want 1 (second call served from cache)", chatModel.calls)
	}
	if cache.hits != 1 || cache.loads != 1 {
		t.Errorf("cache hits = %d loads = %d, want 1/1", cache.hits, cache.loads)
	}
}

func TestResponderCacheModelErrorNotCached(t *testing.T) {
	cache := newFakeCache()
	r := NewResponder(&fakeProvider{model: &fakeChatModel{err: errors.New("provider down")}}, cache, time.Second, time.Minute)

	if _, err := r.Generate(context.Background(), "prompt", 60); err == nil {
		t.Fatal("Generate() should propagate model failure as error")
	}
	if len(cache.data) != 0 {
		t.Errorf("failed generation must not populate the cache, got %d entries", len(cache.data))
	}
}
