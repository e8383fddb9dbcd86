package search

import (
	"math"
	"sort"
)

// Index 单一类别的内存向量索引
// 所有向量在插入时做 L2 归一化，余弦相似度即点积。
// 启动阶段一次性构建，之后只读，并发查询无需加锁。
type Index struct {
	dim     int
	ids     []int
	vectors [][]float64
}

// NewIndex 创建指定维度的空索引
func NewIndex(dim int) *Index {
	return &Index{dim: dim}
}

// Add 插入条目向量，插入前做 L2 归一化
func (idx *Index) Add(id int, vector []float64) error {
	if len(vector) != idx.dim {
		return ErrDimensionMismatch
	}
	normalized, err := normalizeL2(vector)
	if err != nil {
		return err
	}
	idx.ids = append(idx.ids, id)
	idx.vectors = append(idx.vectors, normalized)
	return nil
}

// Size 返回索引中的向量数
func (idx *Index) Size() int {
	return len(idx.ids)
}

// Query 返回与查询向量最相似的 topK 个条目
// 结果按得分降序，得分相同时按条目 ID 升序；不足 topK 时返回全部。
// 相似度阈值由调用方过滤，索引本身不做截断。
func (idx *Index) Query(vector []float64, topK int) ([]Hit, error) {
	if len(vector) != idx.dim {
		return nil, ErrDimensionMismatch
	}
	if topK <= 0 || len(idx.ids) == 0 {
		return nil, nil
	}
	query, err := normalizeL2(vector)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(idx.ids))
	for i, stored := range idx.vectors {
		hits = append(hits, Hit{
			ItemID: idx.ids[i],
			Score:  dot(query, stored),
		})
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].ItemID < hits[b].ItemID
	})
	if topK < len(hits) {
		hits = hits[:topK]
	}
	for i := range hits {
		hits[i].Rank = i + 1
	}
	return hits, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// normalizeL2 返回单位 L2 范数的副本
func normalizeL2(vector []float64) ([]float64, error) {
	var sum float64
	for _, x := range vector {
		sum += x * x
	}
	if sum == 0 {
		return nil, ErrZeroVector
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(vector))
	for i, x := range vector {
		out[i] = x / norm
	}
	return out, nil
}
