package chat

import "faqbot/app/service/resolver"

const welcomeMessage = "Hello! 👋 I'm your smart FAQ assistant. How can I help you today?"

// ChatHistory is an append-only list of session messages.
type ChatHistory struct {
	messages []Message
}

func newChatHistory() ChatHistory {
	return ChatHistory{
		messages: []Message{{Role: RoleAssistant, Content: welcomeMessage}},
	}
}

func (h *ChatHistory) addUser(text string) {
	h.messages = append(h.messages, Message{
		Role:    RoleUser,
		Content: text,
	})
}

func (h *ChatHistory) addAssistant(text string, category resolver.Category) {
	h.messages = append(h.messages, Message{
		Role:     RoleAssistant,
		Content:  text,
		Category: category,
		Badge:    category.Badge(),
	})
}

func (h *ChatHistory) snapshot() []Message {
	result := make([]Message, len(h.messages))
	copy(result, h.messages)
	return result
}
