package search

import "errors"

var (
	// ErrVectorDisabled 表示向量检索/索引能力未配置（Embedder 不可用）
	ErrVectorDisabled = errors.New("vector retrieval is disabled")

	// ErrDimensionMismatch 表示向量维度与索引维度不一致
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrZeroVector 表示零向量无法归一化
	ErrZeroVector = errors.New("cannot normalize zero vector")
)
