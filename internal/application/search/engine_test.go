package search

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"culture-chat-api/internal/domain/entity"
)

func buildTestIndexes(t *testing.T) map[entity.Category]*Index {
	t.Helper()
	films := NewIndex(2)
	mustAdd(t, films, 0, []float64{1, 0})  // science-fiction
	mustAdd(t, films, 1, []float64{0, 1})  // action
	livres := NewIndex(2)
	mustAdd(t, livres, 0, []float64{0.9, 0.1})
	musiques := NewIndex(2)
	mustAdd(t, musiques, 0, []float64{0, 1})
	return map[entity.Category]*Index{
		entity.CategoryFilms:    films,
		entity.CategoryLivres:   livres,
		entity.CategoryMusiques: musiques,
	}
}

func newTestEngine(t *testing.T, embedder *fakeEmbedder) *Engine {
	t.Helper()
	store := newFakeStore()
	var indexer *Indexer
	var indexes map[entity.Category]*Index
	if embedder != nil {
		indexer = NewIndexer(embedder, 2, 32)
		indexes = buildTestIndexes(t)
	} else {
		indexer = NewIndexer(nil, 2, 32)
	}
	return NewEngine(indexer, indexes, NewLexical(store), store, 0.2)
}

func TestEngineVectorSearch(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors:  map[string][]float64{"un film de science-fiction": {1, 0}},
		fallback: []float64{1, 0},
	}
	eng := newTestEngine(t, embedder)

	res, err := eng.Search(context.Background(), Query{
		RawText:  "un film de science-fiction",
		Category: entity.CategoryFilms,
		TopK:     5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if res.Source != SourceVector {
		t.Errorf("source = %q, want vector", res.Source)
	}
	// 正交向量得分 0，低于阈值 0.2，被过滤
	if len(res.Hits) != 1 {
		t.Fatalf("hits = %d, want 1 (below-threshold hit filtered)", len(res.Hits))
	}
	if res.Hits[0].Item.Titre != "Le Voyage" {
		t.Errorf("top hit = %q, want Le Voyage", res.Hits[0].Item.Titre)
	}
	if res.Hits[0].Rank != 1 {
		t.Errorf("top hit rank = %d, want 1", res.Hits[0].Rank)
	}
}

func TestEngineAllCategoriesMergedByScore(t *testing.T) {
	embedder := &fakeEmbedder{fallback: []float64{1, 0}}
	eng := newTestEngine(t, embedder)

	res, err := eng.Search(context.Background(), Query{
		RawText:  "quelque chose comme un voyage",
		Category: entity.CategoryAll,
		TopK:     5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// films/0 (score 1.0) 在 livres/0 (score ~0.99) 之前；正交命中被过滤
	if len(res.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(res.Hits))
	}
	if res.Hits[0].Item.Category != entity.CategoryFilms {
		t.Errorf("first hit category = %s, want films", res.Hits[0].Item.Category)
	}
	if res.Hits[1].Item.Category != entity.CategoryLivres {
		t.Errorf("second hit category = %s, want livres", res.Hits[1].Item.Category)
	}
	for i, h := range res.Hits {
		if h.Rank != i+1 {
			t.Errorf("hit %d rank = %d", i, h.Rank)
		}
	}
}

func TestEngineDegradedModeUsesLexical(t *testing.T) {
	eng := newTestEngine(t, nil)
	if eng.Enabled() {
		t.Fatal("engine without embedder should not be enabled")
	}

	res, err := eng.Search(context.Background(), Query{
		RawText:  "je cherche le film Voyage",
		Category: entity.CategoryFilms,
		TopK:     5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Source != SourceLexical {
		t.Errorf("source = %q, want lexical", res.Source)
	}
	if res.DisabledReason == "" {
		t.Error("degraded mode should record a disabled reason")
	}
	if len(res.Hits) != 1 || res.Hits[0].Item.Titre != "Le Voyage" {
		t.Errorf("lexical fallback hits = %+v", res.Hits)
	}
}

func TestEngineEmbedderErrorFallsBackToLexical(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("encoder down")}
	eng := newTestEngine(t, embedder)

	res, err := eng.Search(context.Background(), Query{
		RawText:  "je cherche le film Voyage",
		Category: entity.CategoryFilms,
		TopK:     5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Source != SourceLexical {
		t.Errorf("source = %q, want lexical", res.Source)
	}
	if res.DisabledReason == "" {
		t.Error("embed failure should record a disabled reason")
	}
	if len(res.Hits) != 1 {
		t.Errorf("lexical fallback hits = %d, want 1", len(res.Hits))
	}
}

func TestEngineIdempotentRanking(t *testing.T) {
	embedder := &fakeEmbedder{fallback: []float64{0.7, 0.7}}
	eng := newTestEngine(t, embedder)

	q := Query{RawText: "une histoire entre deux genres", Category: entity.CategoryAll, TopK: 5}
	first, err := eng.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	second, err := eng.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !reflect.DeepEqual(first.Hits, second.Hits) {
		t.Errorf("repeated search differs:\n%v\n%v", first.Hits, second.Hits)
	}
}

func TestEngineValidation(t *testing.T) {
	eng := newTestEngine(t, nil)

	if _, err := eng.Search(context.Background(), Query{RawText: " ", Category: entity.CategoryFilms}); err == nil {
		t.Error("empty query should fail")
	}
	if _, err := eng.Search(context.Background(), Query{RawText: "abc", Category: "planètes"}); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestIndexerBuildAll(t *testing.T) {
	store := newFakeStore()
	embedder := &fakeEmbedder{fallback: []float64{0.5, 0.5}}
	indexer := NewIndexer(embedder, 2, 2)

	indexes, err := indexer.BuildAll(context.Background(), store)
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	for _, category := range entity.Categories() {
		idx, ok := indexes[category]
		if !ok {
			t.Fatalf("missing index for %s", category)
		}
		if idx.Size() != store.Count(category) {
			t.Errorf("%s index size = %d, want %d", category, idx.Size(), store.Count(category))
		}
	}
}

func TestIndexerDisabled(t *testing.T) {
	indexer := NewIndexer(nil, 2, 32)
	if indexer.Enabled() {
		t.Error("indexer without embedder should be disabled")
	}
	if _, err := indexer.BuildAll(context.Background(), newFakeStore()); !errors.Is(err, ErrVectorDisabled) {
		t.Errorf("BuildAll() error = %v, want ErrVectorDisabled", err)
	}
}

func TestEmbedTextConcatenatesSearchableFields(t *testing.T) {
	item := entity.CatalogItem{
		Category: entity.CategoryMusiques,
		Titre:    "Nuit Bleue",
		Creator:  "Les Echos",
		Genre:    "rock",
		Extra:    map[string]string{"album": "Horizons"},
	}
	got := EmbedText(item)
	want := "Nuit Bleue Les Echos rock Horizons"
	if got != want {
		t.Errorf("EmbedText() = %q, want %q", got, want)
	}
}
