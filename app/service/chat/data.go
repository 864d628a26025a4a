package chat

import (
	"faqbot/app/service/resolver"
	"sync"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role     Role              `json:"role"`
	Content  string            `json:"content"`
	Category resolver.Category `json:"category,omitempty"`
	Badge    string            `json:"badge,omitempty"`
}

// Reply is the assistant side of one chat turn.
type Reply struct {
	Answer   string            `json:"answer"`
	Category resolver.Category `json:"category"`
	Badge    string            `json:"badge"`
}

// Session is the state of one browser conversation.
type Session struct {
	mu sync.Mutex

	history  ChatHistory
	lastSeen time.Time
}
