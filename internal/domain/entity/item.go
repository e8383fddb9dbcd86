// Package entity 定义领域实体
package entity

import (
	"fmt"
	"strings"
)

// Category 文化内容目录类别
type Category string

const (
	CategoryFilms    Category = "films"
	CategoryLivres   Category = "livres"
	CategoryMusiques Category = "musiques"
	// CategoryAll 表示跨全部目录检索
	CategoryAll Category = "all"
)

// Categories 返回全部具体目录类别（不含 all）
func Categories() []Category {
	return []Category{CategoryFilms, CategoryLivres, CategoryMusiques}
}

// ParseCategory 解析类别字符串
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryFilms:
		return CategoryFilms, nil
	case CategoryLivres:
		return CategoryLivres, nil
	case CategoryMusiques:
		return CategoryMusiques, nil
	case CategoryAll:
		return CategoryAll, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// Valid 判断是否为已知类别
func (c Category) Valid() bool {
	switch c {
	case CategoryFilms, CategoryLivres, CategoryMusiques, CategoryAll:
		return true
	}
	return false
}

// Glyph 返回类别对应的展示符号
func (c Category) Glyph() string {
	switch c {
	case CategoryFilms:
		return "🎬"
	case CategoryLivres:
		return "📚"
	case CategoryMusiques:
		return "🎵"
	}
	return ""
}

// CatalogItem 目录条目
// 三个目录共享同一结构；类别特有的列放入 Extra。
type CatalogItem struct {
	// ID 条目在所属目录内的序号，从 0 开始，加载后保持稳定
	ID       int      `json:"id"`
	Category Category `json:"category"`
	Titre    string   `json:"titre"`
	// Creator 统一承载 director / auteur / artist
	Creator     string            `json:"creator,omitempty"`
	Year        string            `json:"year,omitempty"`
	Genre       string            `json:"genre,omitempty"`
	Description string            `json:"description,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// TypeLabel 返回类别的展示标签
func (c Category) TypeLabel() string {
	switch c {
	case CategoryFilms:
		return "Film"
	case CategoryLivres:
		return "Livre"
	case CategoryMusiques:
		return "Musique"
	}
	return ""
}
