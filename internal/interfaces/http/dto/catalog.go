package dto

import (
	"culture-chat-api/internal/domain/entity"
)

// CatalogItemResponse 目录条目响应
type CatalogItemResponse struct {
	ID          int    `json:"id"`
	Titre       string `json:"titre"`
	Creator     string `json:"creator,omitempty"`
	Year        string `json:"year,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
	Album       string `json:"album,omitempty"`
}

// ToCatalogItemResponse 转换目录条目
func ToCatalogItemResponse(item entity.CatalogItem) *CatalogItemResponse {
	return &CatalogItemResponse{
		ID:          item.ID,
		Titre:       item.Titre,
		Creator:     item.Creator,
		Year:        item.Year,
		Genre:       item.Genre,
		Description: item.Description,
		Album:       item.Extra["album"],
	}
}

// ToCatalogItemResponses 批量转换目录条目
func ToCatalogItemResponses(items []entity.CatalogItem) []*CatalogItemResponse {
	out := make([]*CatalogItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToCatalogItemResponse(items[i]))
	}
	return out
}

// CategoryStats 单个目录的统计信息
type CategoryStats struct {
	Count  int      `json:"count"`
	Sample []string `json:"sample"`
}

// StatsResponse 目录统计响应
type StatsResponse struct {
	Films         *CategoryStats `json:"films"`
	Livres        *CategoryStats `json:"livres"`
	Musiques      *CategoryStats `json:"musiques"`
	LLMActive     bool           `json:"llm_active"`
	EncoderActive bool           `json:"encoder_active"`
}
