// Package catalog 提供基于 CSV 文件的目录加载
package catalog

import (
	"strings"
)

// 规范字段名
const (
	fieldTitre       = "titre"
	fieldCreator     = "creator"
	fieldYear        = "year"
	fieldGenre       = "genre"
	fieldDescription = "description"
)

// headerMapping 列名到规范字段的映射，键为小写列名
// 未出现在映射中的列原样进入 Extra。
type headerMapping map[string]string

var (
	filmsMapping = headerMapping{
		"titre":       fieldTitre,
		"title":       fieldTitre,
		"director":    fieldCreator,
		"réalisateur": fieldCreator,
		"realisateur": fieldCreator,
		"year":        fieldYear,
		"année":       fieldYear,
		"annee":       fieldYear,
		"genre":       fieldGenre,
		"description": fieldDescription,
	}

	musiquesMapping = headerMapping{
		"titre":   fieldTitre,
		"title":   fieldTitre,
		"artist":  fieldCreator,
		"artiste": fieldCreator,
		"year":    fieldYear,
		"année":   fieldYear,
		"annee":   fieldYear,
		"genre":   fieldGenre,
	}

	// 书籍来源分两种列名方案，见配置 catalog.livres[].schema
	livresFRMapping = headerMapping{
		"titre":       fieldTitre,
		"auteur":      fieldCreator,
		"annee":       fieldYear,
		"année":       fieldYear,
		"genre":       fieldGenre,
		"description": fieldDescription,
		"resume":      fieldDescription,
		"résumé":      fieldDescription,
	}

	livresENMapping = headerMapping{
		"title":            fieldTitre,
		"titre":            fieldTitre,
		"author":           fieldCreator,
		"authors":          fieldCreator,
		"year":             fieldYear,
		"publication_year": fieldYear,
		"genre":            fieldGenre,
		"categories":       fieldGenre,
		"description":      fieldDescription,
	}
)

// livresMapping 按配置的方案名返回书籍列映射，默认法语方案
func livresMapping(schema string) headerMapping {
	if strings.EqualFold(schema, "en") {
		return livresENMapping
	}
	return livresFRMapping
}

// canonicalField 将列名解析为规范字段；ok 为 false 时该列进入 Extra
func (m headerMapping) canonicalField(header string) (string, bool) {
	field, ok := m[strings.ToLower(strings.TrimSpace(header))]
	return field, ok
}
