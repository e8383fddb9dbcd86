package dto

import (
	"culture-chat-api/internal/application/chat"
	"culture-chat-api/internal/domain/entity"
)

// ChatRequest 对话请求
type ChatRequest struct {
	Message             string        `json:"message"`
	Category            string        `json:"category"`
	ConversationHistory []HistoryTurn `json:"conversation_history"`
}

// HistoryTurn 对话历史轮次
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToChatRequest 转换为应用层请求
func (r *ChatRequest) ToChatRequest() chat.Request {
	history := make([]entity.ConversationTurn, 0, len(r.ConversationHistory))
	for _, turn := range r.ConversationHistory {
		history = append(history, entity.ConversationTurn{
			Role:    entity.Role(turn.Role),
			Content: turn.Content,
		})
	}
	// 大小写不敏感；未知类别原样透传，由对话引擎归一化为兜底回复
	category, err := entity.ParseCategory(r.Category)
	if err != nil {
		category = entity.Category(r.Category)
	}
	return chat.Request{
		Message:  r.Message,
		Category: category,
		History:  history,
	}
}

// ChatResponse 对话响应
type ChatResponse struct {
	Response            string             `json:"response"`
	Type                string             `json:"type"`
	Items               []chat.DisplayItem `json:"items"`
	UsedGenerativeModel bool               `json:"used_generative_model"`
}

// ToChatResponse 转换应用层回复为响应体
func ToChatResponse(reply *chat.Reply) *ChatResponse {
	items := reply.Items
	if items == nil {
		items = []chat.DisplayItem{}
	}
	return &ChatResponse{
		Response:            reply.Response,
		Type:                reply.Type,
		Items:               items,
		UsedGenerativeModel: reply.UsedGenerativeModel,
	}
}
