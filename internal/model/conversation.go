package model

type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

type ConversationTurn struct {
	Role      TurnRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
}

// Answer is a generated reply. Grounded is false when no retrieved
// context cleared the relevance threshold; such answers carry a
// low-confidence notice and cite no sources.
type Answer struct {
	Text     string   `json:"text"`
	Grounded bool     `json:"grounded"`
	Sources  []string `json:"sources,omitempty"`
}
