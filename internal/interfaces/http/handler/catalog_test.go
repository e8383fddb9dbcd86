package handler

import (
	"fmt"
	"reflect"
	"testing"

	"culture-chat-api/internal/domain/entity"
)

func testCatalogItems(n int) []entity.CatalogItem {
	items := make([]entity.CatalogItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entity.CatalogItem{
			ID:       i,
			Category: entity.CategoryFilms,
			Titre:    fmt.Sprintf("Film %d", i),
		})
	}
	return items
}

func TestSampleItemsSeededDeterministic(t *testing.T) {
	items := testCatalogItems(20)

	a := NewCatalogHandler(nil, nil, nil, nil, 42).sampleItems(items, 10)
	b := NewCatalogHandler(nil, nil, nil, nil, 42).sampleItems(items, 10)

	if len(a) != 10 {
		t.Fatalf("sample size = %d, want 10", len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different samples:\n%v\n%v", a, b)
	}
}

func TestSampleItemsSmallCatalogReturnedAsIs(t *testing.T) {
	items := testCatalogItems(3)
	h := NewCatalogHandler(nil, nil, nil, nil, 42)

	got := h.sampleItems(items, 10)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("small catalog should be returned in order, got %v", got)
	}
}

func TestSampleItemsDoesNotMutateCatalog(t *testing.T) {
	items := testCatalogItems(20)
	snapshot := make([]entity.CatalogItem, len(items))
	copy(snapshot, items)

	NewCatalogHandler(nil, nil, nil, nil, 42).sampleItems(items, 10)
	if !reflect.DeepEqual(items, snapshot) {
		t.Error("sampling mutated the catalog slice")
	}
}
