package dto

import "github.com/edupulse/edupulse/internal/app/models"

// ChatRoomResponse is the chat room view: its session and full log
type ChatRoomResponse struct {
	Room     string                    `json:"room"`
	Session  *models.MentorshipSession `json:"session"`
	Messages []models.ChatMessage      `json:"messages"`
}

// PostChatMessageRequest appends a line for clients without a WebSocket
type PostChatMessageRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}
