// Package repository 定义数据访问层接口
package repository

import (
	"culture-chat-api/internal/domain/entity"
)

// CatalogStore 目录数据访问接口
// 目录在进程启动时一次性加载，之后只读，实现无需加锁。
type CatalogStore interface {
	// Items 返回指定类别的全部条目，按 ID 升序
	Items(category entity.Category) []entity.CatalogItem
	// Get 按类别和条目 ID 查找
	Get(category entity.Category, id int) (entity.CatalogItem, bool)
	// Count 返回指定类别的条目数
	Count(category entity.Category) int
	// Counts 返回各类别的条目数
	Counts() map[entity.Category]int
}
