package dto

import "github.com/edupulse/edupulse/internal/app/models"

// MentorshipRequest asks a mentor for a session. Duration defaults to 60 minutes.
type MentorshipRequest struct {
	MentorID string `json:"mentor_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Duration int    `json:"duration" binding:"omitempty,gt=0"`
	Topic    string `json:"topic" binding:"required,notblank"`
}

// MentorshipRequestResponse reports the created session and its price
type MentorshipRequestResponse struct {
	SessionID string                    `json:"session_id"`
	CostUSD   float64                   `json:"cost_usd"`
	CostINR   float64                   `json:"cost_inr"`
	Session   *models.MentorshipSession `json:"session"`
}

// SessionActionRequest targets one session. PaymentDetails is read on accept.
type SessionActionRequest struct {
	SessionID      string `json:"session_id" binding:"required"`
	PaymentDetails string `json:"payment_details"`
}

// SessionResponse wraps a session after a transition
type SessionResponse struct {
	Session *models.MentorshipSession `json:"session"`
}

// PaymentRequest pays an approved session. Only the fields of the chosen
// method are read.
type PaymentRequest struct {
	SessionID     string               `json:"session_id" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"omitempty,oneof=credit_card upi bank_transfer"`
	Currency      models.Currency      `json:"currency" binding:"omitempty,oneof=USD INR"`

	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`

	UPIID string `json:"upi_id"`

	BankAccount string `json:"bank_account"`
	IFSCCode    string `json:"ifsc_code"`
}

// PaymentResponse reports a completed payment
type PaymentResponse struct {
	PaymentID   string                    `json:"payment_id"`
	MeetingLink string                    `json:"meeting_link"`
	Payment     *models.Payment           `json:"payment"`
	Session     *models.MentorshipSession `json:"session"`
}

// VideoCallResponse is returned when a party enters the call
type VideoCallResponse struct {
	Session     *models.MentorshipSession `json:"session"`
	MeetingLink string                    `json:"meeting_link"`
	ChatRoom    string                    `json:"chat_room"`
}
