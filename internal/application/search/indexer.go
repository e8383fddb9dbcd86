package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"golang.org/x/sync/errgroup"

	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/pkg/logger"
	"culture-chat-api/pkg/metrics"
)

const defaultEmbeddingBatch = 32

// Indexer 在启动阶段为每个目录类别构建向量索引
type Indexer struct {
	embedder  embedding.Embedder
	dimension int
	batchSize int
}

// NewIndexer 创建索引构建器；embedder 为 nil 时处于降级模式
func NewIndexer(embedder embedding.Embedder, dimension, batchSize int) *Indexer {
	bs := batchSize
	if bs <= 0 {
		bs = defaultEmbeddingBatch
	}
	return &Indexer{
		embedder:  embedder,
		dimension: dimension,
		batchSize: bs,
	}
}

// Enabled 报告向量索引能力是否可用
func (i *Indexer) Enabled() bool {
	return i != nil && i.embedder != nil
}

// BuildAll 为全部类别构建索引，类别间并行
// 任一类别失败则整体失败，由调用方决定是否降级为词法检索。
func (i *Indexer) BuildAll(ctx context.Context, store repository.CatalogStore) (map[entity.Category]*Index, error) {
	if !i.Enabled() {
		return nil, ErrVectorDisabled
	}

	var mu sync.Mutex
	indexes := make(map[entity.Category]*Index, 3)

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range entity.Categories() {
		g.Go(func() error {
			idx, err := i.buildCategory(gctx, category, store.Items(category))
			if err != nil {
				return fmt.Errorf("build %s index: %w", category, err)
			}
			mu.Lock()
			indexes[category] = idx
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return indexes, nil
}

func (i *Indexer) buildCategory(ctx context.Context, category entity.Category, items []entity.CatalogItem) (*Index, error) {
	start := time.Now()

	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, EmbedText(item))
	}

	vectors, err := i.embedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(items) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(items))
	}

	idx := NewIndex(i.dimension)
	for pos, item := range items {
		if err := idx.Add(item.ID, vectors[pos]); err != nil {
			return nil, fmt.Errorf("item %d: %w", item.ID, err)
		}
	}

	elapsed := time.Since(start)
	metrics.VectorIndexSize.WithLabelValues(string(category)).Set(float64(idx.Size()))
	metrics.VectorIndexBuildDuration.WithLabelValues(string(category)).Observe(elapsed.Seconds())
	logger.Info(ctx, "vector index built",
		"category", category,
		"items", idx.Size(),
		"duration", elapsed.String(),
	)
	return idx, nil
}

// EmbedText 组装条目的可检索文本：标题、创作者、体裁与描述
func EmbedText(item entity.CatalogItem) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{item.Titre, item.Creator, item.Genre, item.Description} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if album := strings.TrimSpace(item.Extra["album"]); album != "" {
		parts = append(parts, album)
	}
	return strings.Join(parts, " ")
}

func (i *Indexer) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if i == nil || i.embedder == nil {
		return nil, ErrVectorDisabled
	}
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += i.batchSize {
		end := start + i.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := i.embedder.EmbedStrings(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}

// EmbedQuery 编码查询文本
func (i *Indexer) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	if !i.Enabled() {
		return nil, ErrVectorDisabled
	}
	q := strings.TrimSpace(text)
	if q == "" {
		return nil, fmt.Errorf("query is empty")
	}
	vectors, err := i.embedder.EmbedStrings(ctx, []string{q})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return vectors[0], nil
}
