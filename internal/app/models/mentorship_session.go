package models

// SessionStatus is the lifecycle state of a mentorship session
type SessionStatus string

const (
	SessionPendingApproval SessionStatus = "pending_approval"
	SessionApproved        SessionStatus = "approved"
	SessionRejected        SessionStatus = "rejected"
	SessionScheduled       SessionStatus = "scheduled"
	SessionActive          SessionStatus = "active"
	SessionCompleted       SessionStatus = "completed"
)

// PaymentStatus travels alongside SessionStatus and only moves forward
type PaymentStatus string

const (
	PaymentAwaitingApproval PaymentStatus = "awaiting_approval"
	PaymentPending          PaymentStatus = "pending_payment"
	PaymentPaid             PaymentStatus = "paid"
)

// ChatRoomPrefix prefixes the session id to form its chat room name
const ChatRoomPrefix = "session_"

// MentorshipSession is an entry of the mentorship_sessions document, keyed by SessionID
type MentorshipSession struct {
	SessionID            string        `json:"session_id"`
	StudentID            string        `json:"student_id"`
	StudentName          string        `json:"student_name"`
	MentorID             string        `json:"mentor_id"`
	MentorName           string        `json:"mentor_name"`
	Date                 string        `json:"date"`
	Time                 string        `json:"time"`
	Duration             int           `json:"duration"`
	Topic                string        `json:"topic"`
	Status               SessionStatus `json:"status"`
	CostUSD              float64       `json:"cost_usd"`
	CostINR              float64       `json:"cost_inr"`
	PaymentStatus        PaymentStatus `json:"payment_status"`
	CreatedAt            string        `json:"created_at"`
	MeetingLink          string        `json:"meeting_link"`
	ChatRoom             string        `json:"chat_room"`
	MentorPaymentDetails string        `json:"mentor_payment_details,omitempty"`
	PaymentID            string        `json:"payment_id,omitempty"`
}

// ChatRoomFor returns the room name of a session id
func ChatRoomFor(sessionID string) string {
	return ChatRoomPrefix + sessionID
}

// InProgress is true for the statuses the admin dashboard counts as active
func (s SessionStatus) InProgress() bool {
	return s == SessionApproved || s == SessionScheduled || s == SessionActive
}

// IsParty reports whether the student or mentor id belongs to this session
func (s *MentorshipSession) IsParty(studentID, mentorID string) bool {
	return (studentID != "" && s.StudentID == studentID) || (mentorID != "" && s.MentorID == mentorID)
}
