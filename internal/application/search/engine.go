package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/pkg/errors"
	"culture-chat-api/pkg/logger"
	"culture-chat-api/pkg/metrics"
)

const (
	defaultTopK = 5
	maxTopK     = 50
)

// Engine 检索引擎：向量优先，词法回退
// 向量路径不可用（Embedder 未配置、索引构建失败或单次查询出错）时
// 透明切换到词法检索，不向调用方抛错。
type Engine struct {
	indexer *Indexer
	indexes map[entity.Category]*Index
	lexical *Lexical
	store   repository.CatalogStore

	// threshold 向量命中的相似度下限，由引擎在索引之外过滤
	threshold float64
}

// NewEngine 创建检索引擎；indexes 为 nil 表示向量路径整体降级
func NewEngine(indexer *Indexer, indexes map[entity.Category]*Index, lexical *Lexical, store repository.CatalogStore, threshold float64) *Engine {
	return &Engine{
		indexer:   indexer,
		indexes:   indexes,
		lexical:   lexical,
		store:     store,
		threshold: threshold,
	}
}

// Enabled 报告向量检索路径是否可用
func (e *Engine) Enabled() bool {
	return e != nil && e.indexer.Enabled() && len(e.indexes) > 0
}

// Search 执行一次检索
func (e *Engine) Search(ctx context.Context, q Query) (*Result, error) {
	if q.TopK <= 0 {
		q.TopK = defaultTopK
	}
	if q.TopK > maxTopK {
		q.TopK = maxTopK
	}
	q.RawText = strings.TrimSpace(q.RawText)
	if q.RawText == "" {
		return nil, errors.New(errors.CodeEmptyMessage, "query is required")
	}
	if !q.Category.Valid() {
		return nil, errors.New(errors.CodeCategoryUnknown, "unknown category").WithDetail(string(q.Category))
	}

	out := &Result{Keywords: Keywords(q.RawText)}

	// 1) 向量召回（可降级）
	if e.Enabled() {
		start := time.Now()
		hits, err := e.vectorSearch(ctx, q)
		if err != nil {
			out.DisabledReason = err.Error()
			logger.Warn(ctx, "vector search failed, falling back to lexical",
				"category", q.Category,
				"error", err,
			)
			metrics.RetrievalTotal.WithLabelValues(string(q.Category), SourceVector, "error").Inc()
		} else {
			out.Hits = hits
			out.Source = SourceVector
			metrics.RetrievalTotal.WithLabelValues(string(q.Category), SourceVector, "ok").Inc()
			metrics.RetrievalDuration.WithLabelValues(string(q.Category), SourceVector).Observe(time.Since(start).Seconds())
			metrics.RetrievalHits.WithLabelValues(string(q.Category), SourceVector).Observe(float64(len(hits)))
			return out, nil
		}
	} else {
		out.DisabledReason = ErrVectorDisabled.Error()
	}

	// 2) 词法回退
	start := time.Now()
	items := e.lexical.Search(q.Category, out.Keywords, q.TopK)
	out.Hits = make([]ItemHit, 0, len(items))
	for i, item := range items {
		out.Hits = append(out.Hits, ItemHit{Item: item, Rank: i + 1})
	}
	out.Source = SourceLexical
	metrics.RetrievalTotal.WithLabelValues(string(q.Category), SourceLexical, "ok").Inc()
	metrics.RetrievalDuration.WithLabelValues(string(q.Category), SourceLexical).Observe(time.Since(start).Seconds())
	metrics.RetrievalHits.WithLabelValues(string(q.Category), SourceLexical).Observe(float64(len(out.Hits)))
	return out, nil
}

func (e *Engine) vectorSearch(ctx context.Context, q Query) ([]ItemHit, error) {
	vec, err := e.indexer.EmbedQuery(ctx, q.RawText)
	if err != nil {
		return nil, err
	}

	if q.Category == entity.CategoryAll {
		return e.queryAll(vec, q.TopK)
	}

	idx, ok := e.indexes[q.Category]
	if !ok {
		return nil, fmt.Errorf("no index for category %s", q.Category)
	}
	hits, err := idx.Query(vec, q.TopK)
	if err != nil {
		return nil, err
	}
	return e.resolve(q.Category, hits), nil
}

// queryAll 对全部类别查询相同 topK 后按得分合并
// 得分相同时按类别名、条目 ID 升序，保证排序确定。
func (e *Engine) queryAll(vec []float64, topK int) ([]ItemHit, error) {
	var merged []ItemHit
	for _, category := range entity.Categories() {
		idx, ok := e.indexes[category]
		if !ok {
			continue
		}
		hits, err := idx.Query(vec, topK)
		if err != nil {
			return nil, err
		}
		merged = append(merged, e.resolve(category, hits)...)
	}

	sort.Slice(merged, func(a, b int) bool {
		if merged[a].Score != merged[b].Score {
			return merged[a].Score > merged[b].Score
		}
		if merged[a].Item.Category != merged[b].Item.Category {
			return merged[a].Item.Category < merged[b].Item.Category
		}
		return merged[a].Item.ID < merged[b].Item.ID
	})
	if topK < len(merged) {
		merged = merged[:topK]
	}
	for i := range merged {
		merged[i].Rank = i + 1
	}
	return merged, nil
}

// resolve 过滤低于阈值的命中并解析为目录条目
func (e *Engine) resolve(category entity.Category, hits []Hit) []ItemHit {
	out := make([]ItemHit, 0, len(hits))
	for _, h := range hits {
		if h.Score <= e.threshold {
			continue
		}
		item, ok := e.store.Get(category, h.ItemID)
		if !ok {
			continue
		}
		out = append(out, ItemHit{Item: item, Score: h.Score, Rank: len(out) + 1})
	}
	return out
}
