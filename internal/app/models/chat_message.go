package models

// SystemSender is the sender name of join and leave notices
const SystemSender = "System"

// ChatMessage is one line of a room log in the chat_messages document
type ChatMessage struct {
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}
