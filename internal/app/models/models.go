package models

// Document names in the record store
const (
	DocumentUsers          = "users"
	DocumentSessions       = "mentorship_sessions"
	DocumentChatMessages   = "chat_messages"
	DocumentPayments       = "payments"
	DocumentStudentRecords = "student_records"
)

// Document shapes
type (
	UserMap          map[string]User
	SessionMap       map[string]MentorshipSession
	ChatLogMap       map[string][]ChatMessage
	PaymentMap       map[string]Payment
	StudentRecordMap map[string][]StudentRiskRecord
)
