package search

import (
	"strings"

	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
)

// Lexical 词法检索：关键词在文本字段上的子串匹配
// 作为向量检索不可用时的零依赖回退路径，不做排序，保持目录顺序。
type Lexical struct {
	store repository.CatalogStore
}

// NewLexical 创建词法检索器
func NewLexical(store repository.CatalogStore) *Lexical {
	return &Lexical{store: store}
}

// Search 在指定类别中做子串匹配
// 匹配条件：关键词以空格拼接后出现在任一可检索字段中。
// 字段先做折叠（小写、标点归一为空格），使 "science fiction"
// 能命中 "science-fiction" 这类带连字符的体裁。
func (l *Lexical) Search(category entity.Category, keywords []string, limit int) []entity.CatalogItem {
	if limit <= 0 || len(keywords) == 0 {
		return nil
	}

	if category == entity.CategoryAll {
		var merged []entity.CatalogItem
		for _, cat := range entity.Categories() {
			merged = append(merged, l.Search(cat, keywords, limit-len(merged))...)
			if len(merged) >= limit {
				break
			}
		}
		return merged
	}

	needle := strings.ToLower(strings.Join(keywords, " "))
	var matched []entity.CatalogItem
	for _, item := range l.store.Items(category) {
		if matchesItem(item, needle) {
			matched = append(matched, item)
			if len(matched) >= limit {
				break
			}
		}
	}
	return matched
}

func matchesItem(item entity.CatalogItem, needle string) bool {
	for _, field := range searchableFields(item) {
		if field == "" {
			continue
		}
		if strings.Contains(foldField(field), needle) {
			return true
		}
	}
	return false
}

// foldField 小写并把词之间的标点归一为单个空格
func foldField(s string) string {
	return strings.Join(wordPattern.FindAllString(strings.ToLower(s), -1), " ")
}

// searchableFields 按类别返回参与词法匹配的字段集合
func searchableFields(item entity.CatalogItem) []string {
	switch item.Category {
	case entity.CategoryMusiques:
		return []string{item.Titre, item.Creator, item.Extra["album"], item.Genre}
	default:
		return []string{item.Titre, item.Creator, item.Description, item.Genre}
	}
}
