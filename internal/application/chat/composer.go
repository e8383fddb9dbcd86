package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"culture-chat-api/internal/application/search"
	"culture-chat-api/internal/domain/entity"
)

const maxDescriptionRunes = 200

// genreSuggestions 无结果时按类别推荐的固定体裁表
var genreSuggestions = map[entity.Category][]string{
	entity.CategoryFilms:    {"science-fiction", "action", "comédie", "thriller"},
	entity.CategoryLivres:   {"roman", "science-fiction", "policier", "fantastique"},
	entity.CategoryMusiques: {"rock", "pop", "jazz", "électronique"},
}

// Composer 回复组装器
// 纯合并逻辑：不重排、不过滤检索结果，只负责文案与展示字段。
type Composer struct{}

// NewComposer 创建回复组装器
func NewComposer() *Composer {
	return &Composer{}
}

// SearchResultsReply 组装有结果时的回复：引导语 + 展示条目
func (c *Composer) SearchResultsReply(category entity.Category, keywords []string, hits []search.ItemHit) *Reply {
	glyph := category.Glyph()
	if glyph == "" {
		glyph = "✨"
	}

	var intro string
	switch {
	case len(hits) == 1:
		intro = fmt.Sprintf("%s J'ai trouvé exactement ce qu'il te faut !", glyph)
	case len(hits) <= 3:
		intro = fmt.Sprintf("%s Voici %d %s qui devraient te plaire !", glyph, len(hits), category)
	default:
		intro = fmt.Sprintf("%s Super ! J'ai %d excellentes suggestions pour toi !", glyph, len(hits))
	}

	var context string
	if len(keywords) > 0 {
		context = fmt.Sprintf("Basé sur ta recherche '%s', voici mes recommandations :", strings.Join(firstN(keywords, 2), " "))
	} else {
		context = "Voici ce que j'ai sélectionné pour toi :"
	}

	return &Reply{
		Response: intro + "\n\n" + context,
		Type:     ReplyTypeSearchResults,
		Items:    DisplayItems(hits),
	}
}

// NoResultsReply 组装无结果时的回复：致歉 + 固定体裁建议
func (c *Composer) NoResultsReply(category entity.Category, keywords []string) *Reply {
	var response string
	if len(keywords) > 0 {
		suggestions := suggestionsFor(category, []string{"action", "comédie"}, 3)
		response = fmt.Sprintf(
			"🤔 Hmm, je n'ai rien trouvé pour '%s'...\n\nEssaie d'être plus précis ! Par exemple : un titre, un auteur, ou un genre comme %s ?",
			strings.Join(firstN(keywords, 2), " "),
			strings.Join(suggestions, ", "),
		)
	} else {
		suggestions := suggestionsFor(category, []string{"action"}, 2)
		response = fmt.Sprintf(
			"😅 Je n'ai pas bien compris ta recherche.\n\nDis-moi ce que tu cherches : un titre, un auteur, ou un genre comme %s ?",
			strings.Join(suggestions, ", "),
		)
	}
	return &Reply{Response: response, Type: ReplyTypeConversation, Items: []DisplayItem{}}
}

// ConversationReply 组装纯文本回复
func (c *Composer) ConversationReply(text string, usedGenerative bool) *Reply {
	return &Reply{
		Response:            text,
		Type:                ReplyTypeConversation,
		Items:               []DisplayItem{},
		UsedGenerativeModel: usedGenerative,
	}
}

// ErrorReply 组装内部故障时的回复
func (c *Composer) ErrorReply(text string) *Reply {
	return &Reply{Response: text, Type: ReplyTypeError, Items: []DisplayItem{}}
}

// DisplayItems 将命中条目转换为展示条目，保持检索顺序
func DisplayItems(hits []search.ItemHit) []DisplayItem {
	out := make([]DisplayItem, 0, len(hits))
	for _, h := range hits {
		out = append(out, displayItem(h.Item))
	}
	return out
}

func displayItem(item entity.CatalogItem) DisplayItem {
	d := DisplayItem{
		Type:  item.Category.TypeLabel(),
		Titre: item.Titre,
	}
	switch item.Category {
	case entity.CategoryFilms:
		d.Details = fmt.Sprintf("🎬 Réalisateur: %s | 📅 %s", item.Creator, item.Year)
		d.Description = truncateDescription(item.Description)
	case entity.CategoryLivres:
		d.Details = fmt.Sprintf("✍️ Auteur: %s | 📅 %s", item.Creator, item.Year)
		d.Description = truncateDescription(item.Description)
	case entity.CategoryMusiques:
		d.Details = fmt.Sprintf("🎤 Artiste: %s | 💿 Album: %s", item.Creator, item.Extra["album"])
		if item.Year != "" {
			d.Description = "Année: " + item.Year
		}
	}
	return d
}

// truncateDescription 截断超长描述并追加省略号
func truncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDescriptionRunes]) + "..."
}

func suggestionsFor(category entity.Category, fallback []string, n int) []string {
	list, ok := genreSuggestions[category]
	if !ok {
		list = fallback
	}
	return firstN(list, n)
}

func firstN(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
