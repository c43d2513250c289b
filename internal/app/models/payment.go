package models

// Currency of a payment
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// INRPerUSD converts session costs. Every stored session satisfies
// cost_inr == cost_usd * INRPerUSD.
const INRPerUSD = 83.5

// PaymentMethod selects which masked details a payment carries
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentCompleted is the only status a locally recorded payment has
const PaymentCompleted = "completed"

// Payment is an entry of the payments document, keyed by PaymentID. Never mutated.
type Payment struct {
	PaymentID     string        `json:"payment_id"`
	SessionID     string        `json:"session_id"`
	StudentID     string        `json:"student_id"`
	MentorID      string        `json:"mentor_id"`
	Amount        float64       `json:"amount"`
	Currency      Currency      `json:"currency"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        string        `json:"status"`
	Timestamp     string        `json:"timestamp"`

	CardLast4        string `json:"card_last4,omitempty"`
	CardHolder       string `json:"card_holder,omitempty"`
	UPIID            string `json:"upi_id,omitempty"`
	BankAccountLast4 string `json:"bank_account_last4,omitempty"`
	IFSCCode         string `json:"ifsc_code,omitempty"`
}
