package store

import "time"

// Turn is a single exchange inside an active chat conversation.
type Turn struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation holds the in-memory state of a tutoring chat. Conversations
// are ephemeral and expire after a period of inactivity.
type Conversation struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Subject string `json:"subject"` // optional topic hint carried into the prompt
	Turns   []Turn `json:"turns"`

	LastActiveAt time.Time `json:"last_active_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

func (c *Conversation) Append(role, content string) {
	c.Turns = append(c.Turns, Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	c.LastActiveAt = time.Now()
}
