// Package chat 实现对话引擎：规则意图、检索编排与生成回退
package chat

import (
	"culture-chat-api/internal/domain/entity"
)

// Request 一次对话请求
// 会话历史由调用方携带，引擎无状态，从不持久化历史。
type Request struct {
	Message  string
	Category entity.Category
	History  []entity.ConversationTurn
}

// DisplayItem 返回给调用方的展示条目
type DisplayItem struct {
	Type        string `json:"type"`
	Titre       string `json:"titre"`
	Details     string `json:"details"`
	Description string `json:"description"`
}

// Reply 对话回复
type Reply struct {
	Response            string        `json:"response"`
	Type                string        `json:"type"`
	Items               []DisplayItem `json:"items"`
	UsedGenerativeModel bool          `json:"used_generative_model"`

	// Intent 本回合解析出的意图，用于日志与指标
	Intent entity.Intent `json:"-"`
}

// 回复类型
const (
	ReplyTypeConversation  = "conversation"
	ReplyTypeSearchResults = "search_results"
	ReplyTypeError         = "error"
)
