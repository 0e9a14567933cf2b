package models

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
