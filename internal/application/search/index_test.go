package search

import (
	"math"
	"reflect"
	"testing"
)

func TestIndexNormalizesOnInsert(t *testing.T) {
	idx := NewIndex(3)
	if err := idx.Add(0, []float64{3, 4, 0}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	var norm float64
	for _, x := range idx.vectors[0] {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if math.Abs(norm-1) > 1e-4 {
		t.Errorf("stored vector norm = %f, want 1 (±1e-4)", norm)
	}
}

func TestIndexRejectsBadVectors(t *testing.T) {
	idx := NewIndex(3)
	if err := idx.Add(0, []float64{1, 2}); err != ErrDimensionMismatch {
		t.Errorf("Add(wrong dim) error = %v, want ErrDimensionMismatch", err)
	}
	if err := idx.Add(0, []float64{0, 0, 0}); err != ErrZeroVector {
		t.Errorf("Add(zero vector) error = %v, want ErrZeroVector", err)
	}
}

func TestIndexQueryOrdering(t *testing.T) {
	idx := NewIndex(2)
	// id 0 正交，id 1 对齐，id 2 反向
	mustAdd(t, idx, 0, []float64{0, 1})
	mustAdd(t, idx, 1, []float64{1, 0})
	mustAdd(t, idx, 2, []float64{-1, 0})

	hits, err := idx.Query([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	gotIDs := hitIDs(hits)
	wantIDs := []int{1, 0, 2}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("Query() ids = %v, want %v", gotIDs, wantIDs)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("scores not non-increasing at rank %d", i+1)
		}
	}
	for i, h := range hits {
		if h.Rank != i+1 {
			t.Errorf("hit %d has rank %d", i, h.Rank)
		}
	}
}

func TestIndexQueryTieBreakByID(t *testing.T) {
	idx := NewIndex(2)
	// 同一方向的向量得分相同，必须按 ID 升序
	mustAdd(t, idx, 7, []float64{2, 0})
	mustAdd(t, idx, 3, []float64{1, 0})
	mustAdd(t, idx, 5, []float64{4, 0})

	hits, err := idx.Query([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := hitIDs(hits); !reflect.DeepEqual(got, []int{3, 5, 7}) {
		t.Errorf("tie-break ids = %v, want [3 5 7]", got)
	}
}

func TestIndexQueryBounds(t *testing.T) {
	idx := NewIndex(2)
	mustAdd(t, idx, 0, []float64{1, 0})
	mustAdd(t, idx, 1, []float64{0, 1})

	hits, err := idx.Query([]float64{1, 1}, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("Query(topK=10) over 2 items returned %d hits", len(hits))
	}

	hits, err = idx.Query([]float64{1, 1}, 1)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("Query(topK=1) returned %d hits", len(hits))
	}
}

func TestIndexQueryIdempotent(t *testing.T) {
	idx := NewIndex(3)
	mustAdd(t, idx, 0, []float64{1, 2, 3})
	mustAdd(t, idx, 1, []float64{3, 2, 1})
	mustAdd(t, idx, 2, []float64{-1, 0, 1})

	first, err := idx.Query([]float64{1, 1, 1}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	second, err := idx.Query([]float64{1, 1, 1}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated query differs: %v vs %v", first, second)
	}
}

func TestIndexQueryEmpty(t *testing.T) {
	idx := NewIndex(2)
	hits, err := idx.Query([]float64{1, 0}, 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("empty index returned %d hits", len(hits))
	}
}

func mustAdd(t *testing.T, idx *Index, id int, vec []float64) {
	t.Helper()
	if err := idx.Add(id, vec); err != nil {
		t.Fatalf("Add(%d) error = %v", id, err)
	}
}

func hitIDs(hits []Hit) []int {
	ids := make([]int, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ItemID)
	}
	return ids
}
