package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"culture-chat-api/internal/config"
	"culture-chat-api/internal/domain/entity"
	"culture-chat-api/internal/domain/repository"
	"culture-chat-api/pkg/errors"
	"culture-chat-api/pkg/logger"
)

// Store 内存目录存储
// 启动时加载全部 CSV，之后只读。
type Store struct {
	items map[entity.Category][]entity.CatalogItem
}

var _ repository.CatalogStore = (*Store)(nil)

// NewStore 加载配置指定的目录文件
func NewStore(ctx context.Context, cfg *config.CatalogConfig) (*Store, error) {
	s := &Store{items: make(map[entity.Category][]entity.CatalogItem)}

	films, err := loadFile(filepath.Join(cfg.Dir, cfg.Films), entity.CategoryFilms, filmsMapping)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCatalogUnavailable, "load films catalog")
	}
	s.items[entity.CategoryFilms] = films

	musiques, err := loadFile(filepath.Join(cfg.Dir, cfg.Musiques), entity.CategoryMusiques, musiquesMapping)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCatalogUnavailable, "load musiques catalog")
	}
	s.items[entity.CategoryMusiques] = musiques

	livres, err := loadBooks(cfg.Dir, cfg.Livres)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCatalogUnavailable, "load livres catalog")
	}
	s.items[entity.CategoryLivres] = livres

	logger.Info(ctx, "catalog loaded",
		"films", len(films),
		"livres", len(livres),
		"musiques", len(musiques),
	)
	return s, nil
}

// Items 实现 repository.CatalogStore
func (s *Store) Items(category entity.Category) []entity.CatalogItem {
	return s.items[category]
}

// Get 实现 repository.CatalogStore
func (s *Store) Get(category entity.Category, id int) (entity.CatalogItem, bool) {
	items := s.items[category]
	if id < 0 || id >= len(items) {
		return entity.CatalogItem{}, false
	}
	return items[id], true
}

// Count 实现 repository.CatalogStore
func (s *Store) Count(category entity.Category) int {
	return len(s.items[category])
}

// Counts 实现 repository.CatalogStore
func (s *Store) Counts() map[entity.Category]int {
	counts := make(map[entity.Category]int, len(s.items))
	for cat, items := range s.items {
		counts[cat] = len(items)
	}
	return counts
}

// loadFile 加载单个 CSV 文件为目录条目，ID 为条目在文件内的顺序号
func loadFile(path string, category entity.Category, mapping headerMapping) ([]entity.CatalogItem, error) {
	rows, err := readRows(path, mapping)
	if err != nil {
		return nil, err
	}
	items := make([]entity.CatalogItem, 0, len(rows))
	for _, row := range rows {
		item := row.toItem(category)
		item.ID = len(items)
		items = append(items, item)
	}
	return items, nil
}

// loadBooks 按来源顺序合并多个书籍文件
// 同一 (titre, auteur) 以首个来源为准，后续来源的重复条目被丢弃。
func loadBooks(dir string, sources []config.BookSourceConfig) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	seen := make(map[string]struct{})

	for _, src := range sources {
		rows, err := readRows(filepath.Join(dir, src.Path), livresMapping(src.Schema))
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Path, err)
		}
		for _, row := range rows {
			item := row.toItem(entity.CategoryLivres)
			key := bookKey(item.Titre, item.Creator)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			item.ID = len(items)
			items = append(items, item)
		}
	}
	return items, nil
}

func bookKey(titre, auteur string) string {
	return strings.ToLower(strings.TrimSpace(titre)) + "\x00" + strings.ToLower(strings.TrimSpace(auteur))
}

// record 一行 CSV 解析结果
type record struct {
	fields map[string]string
	extra  map[string]string
}

func (r record) toItem(category entity.Category) entity.CatalogItem {
	item := entity.CatalogItem{
		Category:    category,
		Titre:       r.fields[fieldTitre],
		Creator:     r.fields[fieldCreator],
		Year:        r.fields[fieldYear],
		Genre:       r.fields[fieldGenre],
		Description: r.fields[fieldDescription],
	}
	if len(r.extra) > 0 {
		item.Extra = r.extra
	}
	return item
}

// readRows 读取 CSV 并按列映射规范化
// 标题为空的行跳过；列数与表头不一致的行跳过。
func readRows(path string, mapping headerMapping) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// 去除 UTF-8 BOM
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []record
	for {
		cols, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(cols) != len(header) {
			continue
		}

		row := record{fields: make(map[string]string), extra: make(map[string]string)}
		for i, raw := range cols {
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			if field, ok := mapping.canonicalField(header[i]); ok {
				// 同一规范字段多列映射时保留首个非空值
				if _, exists := row.fields[field]; !exists {
					row.fields[field] = value
				}
			} else {
				row.extra[strings.ToLower(strings.TrimSpace(header[i]))] = value
			}
		}
		if row.fields[fieldTitre] == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
