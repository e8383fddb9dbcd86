package chat

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/domain/entity"
)

type fakeStore struct {
	items map[entity.Category][]entity.CatalogItem
	reads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[entity.Category][]entity.CatalogItem{
		entity.CategoryFilms: {
			{ID: 0, Category: entity.CategoryFilms, Titre: "Le Voyage", Creator: "Jean Martin", Year: "2001", Genre: "science-fiction", Description: "Un vaisseau quitte la Terre."},
			{ID: 1, Category: entity.CategoryFilms, Titre: "La Course", Creator: "Anne Dupont", Year: "2015", Genre: "action", Description: "Une poursuite dans Paris."},
		},
		entity.CategoryLivres: {
			{ID: 0, Category: entity.CategoryLivres, Titre: "Les Sables", Creator: "Paul Noir", Year: "1985", Genre: "roman", Description: "Une enfance en Provence."},
		},
		entity.CategoryMusiques: {
			{ID: 0, Category: entity.CategoryMusiques, Titre: "Nuit Bleue", Creator: "Les Echos", Year: "1999", Genre: "rock", Extra: map[string]string{"album": "Horizons"}},
		},
	}}
}

func (s *fakeStore) Items(category entity.Category) []entity.CatalogItem {
	s.reads++
	return s.items[category]
}

func (s *fakeStore) Get(category entity.Category, id int) (entity.CatalogItem, bool) {
	s.reads++
	items := s.items[category]
	if id < 0 || id >= len(items) {
		return entity.CatalogItem{}, false
	}
	return items[id], true
}

func (s *fakeStore) Count(category entity.Category) int {
	return len(s.items[category])
}

func (s *fakeStore) Counts() map[entity.Category]int {
	counts := make(map[entity.Category]int)
	for cat, items := range s.items {
		counts[cat] = len(items)
	}
	return counts
}

// newLexicalEngine 构建降级模式（仅词法）的检索引擎，保证测试确定性
func newLexicalEngine() (*search.Engine, *fakeStore) {
	store := newFakeStore()
	return search.NewEngine(search.NewIndexer(nil, 2, 32), nil, search.NewLexical(store), store, 0.2), store
}

// fakeChatModel 以固定文本应答的 ChatModel
type fakeChatModel struct {
	output string
	err    error
	delay  time.Duration
	calls  int
}

func (m *fakeChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.output, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in tests")
}

// fakeProvider 直接返回注入的 ChatModel
type fakeProvider struct {
	model model.BaseChatModel
	err   error
}

func (p *fakeProvider) Default(ctx context.Context) (model.BaseChatModel, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.model, nil
}

func (p *fakeProvider) Configured() bool {
	return p.model != nil || p.err != nil
}

// fakeCache 进程内 ReplyCache
type fakeCache struct {
	data  map[string]string
	hits  int
	loads int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (string, error)) (string, bool, error) {
	if v, ok := c.data[key]; ok {
		c.hits++
		return v, true, nil
	}
	c.loads++
	v, err := loader()
	if err != nil {
		return "", false, err
	}
	c.data[key] = v
	return v, false, nil
}
