package entity

// Role 会话消息角色
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Intent 用户消息意图
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentThanks       Intent = "thanks"
	IntentSearch       Intent = "search"
	IntentOpenQuestion Intent = "open_question"
	IntentUnknown      Intent = "unknown"

	// 检索意图在拿到结果后细分为以下两种
	IntentSearchResults   Intent = "search_with_results"
	IntentSearchNoResults Intent = "search_no_results"
)

// ConversationTurn 会话中的一条消息
// 历史由调用方随请求携带，服务端不持久化。
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
