package search

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"

	"culture-chat-api/internal/domain/entity"
)

type fakeStore struct {
	items map[entity.Category][]entity.CatalogItem
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
	return s.items[category]
}

func (s *fakeStore) Get(category entity.Category, id int) (entity.CatalogItem, bool) {
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

// fakeEmbedder 按文本查表返回固定向量，未命中时返回 fallback
type fakeEmbedder struct {
	vectors  map[string][]float64
	fallback []float64
	err      error
	calls    int
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		if vec, ok := f.vectors[text]; ok {
			out = append(out, vec)
		} else {
			out = append(out, f.fallback)
		}
	}
	return out, nil
}
