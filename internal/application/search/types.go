// Package search 提供目录检索能力：向量召回与词法回退
package search

import (
	"culture-chat-api/internal/domain/entity"
)

// Query 本地检索输入
type Query struct {
	RawText  string
	Category entity.Category
	TopK     int
}

// Hit 索引层命中：目录条目 ID 与相似度得分
// 单次查询的命中按得分降序排列，得分相同时按 ID 升序。
type Hit struct {
	ItemID int
	Score  float64
	Rank   int
}

// ItemHit 引擎层命中：已解析为完整目录条目
type ItemHit struct {
	Item  entity.CatalogItem
	Score float64
	Rank  int
}

// Result 检索输出
type Result struct {
	Hits     []ItemHit
	Keywords []string
	// Source 标识命中来源：vector 或 lexical
	Source string

	// DisabledReason 向量路径不可用时的原因，仅用于诊断
	DisabledReason string
}

const (
	SourceVector  = "vector"
	SourceLexical = "lexical"
)
