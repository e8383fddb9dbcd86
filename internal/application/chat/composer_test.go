package chat

import (
	"strings"
	"testing"

	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/domain/entity"
)

func filmHits(n int) []search.ItemHit {
	hits := make([]search.ItemHit, 0, n)
	for i := 0; i < n; i++ {
		hits = append(hits, search.ItemHit{
			Item: entity.CatalogItem{
				ID:          i,
				Category:    entity.CategoryFilms,
				Titre:       "Film",
				Creator:     "Réalisateur",
				Year:        "2000",
				Description: "desc",
			},
			Score: 0.9,
			Rank:  i + 1,
		})
	}
	return hits
}

func TestSearchResultsIntroScalesWithHitCount(t *testing.T) {
	c := NewComposer()

	tests := []struct {
		hits int
		want string
	}{
		{1, "J'ai trouvé exactement ce qu'il te faut"},
		{2, "Voici 2 films qui devraient te plaire"},
		{3, "Voici 3 films qui devraient te plaire"},
		{5, "J'ai 5 excellentes suggestions pour toi"},
	}

	for _, tt := range tests {
		reply := c.SearchResultsReply(entity.CategoryFilms, []string{"action"}, filmHits(tt.hits))
		if !strings.Contains(reply.Response, tt.want) {
			t.Errorf("intro for %d hits = %q, want substring %q", tt.hits, reply.Response, tt.want)
		}
		if reply.Type != ReplyTypeSearchResults {
			t.Errorf("type = %q, want search_results", reply.Type)
		}
		if len(reply.Items) != tt.hits {
			t.Errorf("items = %d, want %d", len(reply.Items), tt.hits)
		}
	}
}

func TestSearchResultsEchoesKeywords(t *testing.T) {
	c := NewComposer()
	reply := c.SearchResultsReply(entity.CategoryFilms, []string{"science", "fiction", "spatial"}, filmHits(1))
	if !strings.Contains(reply.Response, "'science fiction'") {
		t.Errorf("reply should echo first two keywords, got %q", reply.Response)
	}
}

func TestSearchResultsGlyphPerCategory(t *testing.T) {
	c := NewComposer()
	tests := []struct {
		category entity.Category
		glyph    string
	}{
		{entity.CategoryFilms, "🎬"},
		{entity.CategoryLivres, "📚"},
		{entity.CategoryMusiques, "🎵"},
		{entity.CategoryAll, "✨"},
	}
	for _, tt := range tests {
		reply := c.SearchResultsReply(tt.category, nil, filmHits(1))
		if !strings.HasPrefix(reply.Response, tt.glyph) {
			t.Errorf("%s reply starts with %q, want glyph %q", tt.category, reply.Response[:4], tt.glyph)
		}
	}
}

func TestNoResultsNamesKeywordsAndSuggestsGenres(t *testing.T) {
	c := NewComposer()

	reply := c.NoResultsReply(entity.CategoryLivres, []string{"xyzzy123"})
	if !strings.Contains(reply.Response, "'xyzzy123'") {
		t.Errorf("apology should name the attempted keyword, got %q", reply.Response)
	}
	for _, genre := range []string{"roman", "science-fiction", "policier"} {
		if !strings.Contains(reply.Response, genre) {
			t.Errorf("apology should suggest %q for livres, got %q", genre, reply.Response)
		}
	}
	if reply.Type != ReplyTypeConversation {
		t.Errorf("type = %q, want conversation", reply.Type)
	}
}

func TestNoResultsWithoutKeywords(t *testing.T) {
	c := NewComposer()
	reply := c.NoResultsReply(entity.CategoryFilms, nil)
	if !strings.Contains(reply.Response, "Je n'ai pas bien compris") {
		t.Errorf("generic apology expected, got %q", reply.Response)
	}
	if !strings.Contains(reply.Response, "science-fiction, action") {
		t.Errorf("two film genres expected, got %q", reply.Response)
	}
}

func TestDisplayItemFormatting(t *testing.T) {
	film := search.ItemHit{Item: entity.CatalogItem{
		Category: entity.CategoryFilms, Titre: "Le Voyage", Creator: "Jean Martin", Year: "2001",
		Description: strings.Repeat("a", 250),
	}}
	livre := search.ItemHit{Item: entity.CatalogItem{
		Category: entity.CategoryLivres, Titre: "Les Sables", Creator: "Paul Noir", Year: "1985",
		Description: "Courte description.",
	}}
	musique := search.ItemHit{Item: entity.CatalogItem{
		Category: entity.CategoryMusiques, Titre: "Nuit Bleue", Creator: "Les Echos", Year: "1999",
		Extra: map[string]string{"album": "Horizons"},
	}}

	items := DisplayItems([]search.ItemHit{film, livre, musique})
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	if items[0].Type != "Film" || items[0].Details != "🎬 Réalisateur: Jean Martin | 📅 2001" {
		t.Errorf("film display = %+v", items[0])
	}
	if !strings.HasSuffix(items[0].Description, "...") || len([]rune(items[0].Description)) != 203 {
		t.Errorf("long description should be truncated to 200 runes plus ellipsis, got %d runes", len([]rune(items[0].Description)))
	}

	if items[1].Type != "Livre" || items[1].Details != "✍️ Auteur: Paul Noir | 📅 1985" {
		t.Errorf("livre display = %+v", items[1])
	}
	if items[1].Description != "Courte description." {
		t.Errorf("short description should be untouched, got %q", items[1].Description)
	}

	if items[2].Type != "Musique" || items[2].Details != "🎤 Artiste: Les Echos | 💿 Album: Horizons" {
		t.Errorf("musique display = %+v", items[2])
	}
	if items[2].Description != "Année: 1999" {
		t.Errorf("musique description = %q", items[2].Description)
	}
}
