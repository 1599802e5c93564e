package models

import "time"

// QuoteSubmission is the raw quote request form payload.
//
// Website is a honeypot field that real visitors never see. TurnstileToken is
// the challenge response produced by the contact form widget. TypeIssues holds
// fields the decoder rejected because the value was not a string.
type QuoteSubmission struct {
	Name                  string `json:"name" validate:"required,max=120"`
	Phone                 string `json:"phone" validate:"required,max=40"`
	Email                 string `json:"email" validate:"omitempty,max=160,email"`
	Address               string `json:"address" validate:"max=200"`
	City                  string `json:"city" validate:"max=120"`
	MaterialNeeded        string `json:"materialNeeded" validate:"max=120"`
	QuantityYards         string `json:"quantityYards" validate:"max=40"`
	PreferredDeliveryDate string `json:"preferredDeliveryDate" validate:"max=40"`
	Notes                 string `json:"notes" validate:"max=2000"`
	Website               string `json:"website" validate:"max=200"`
	TurnstileToken        string `json:"turnstileToken" validate:"max=4000"`

	TypeIssues []FieldIssue `json:"-" validate:"-"`
}

// QuoteRequest represents a stored quote request row
type QuoteRequest struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Phone                 string    `json:"phone"`
	Email                 string    `json:"email"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	MaterialNeeded        string    `json:"materialNeeded"`
	QuantityYards         string    `json:"quantityYards"`
	PreferredDeliveryDate string    `json:"preferredDeliveryDate"`
	Notes                 string    `json:"notes"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToQuoteRequest copies the persisted fields of a submission, leaving out
// the honeypot and challenge token
func (s *QuoteSubmission) ToQuoteRequest() *QuoteRequest {
	return &QuoteRequest{
		Name:                  s.Name,
		Phone:                 s.Phone,
		Email:                 s.Email,
		Address:               s.Address,
		City:                  s.City,
		MaterialNeeded:        s.MaterialNeeded,
		QuantityYards:         s.QuantityYards,
		PreferredDeliveryDate: s.PreferredDeliveryDate,
		Notes:                 s.Notes,
	}
}

// FieldIssue describes one failing field of a rejected payload
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// QuoteCreatedResponse is returned when a quote request was stored
type QuoteCreatedResponse struct {
	Success bool  `json:"success"`
	QuoteID int64 `json:"quoteId"`
}

// QuoteAcceptedResponse is returned for submissions that were accepted
// without being stored
type QuoteAcceptedResponse struct {
	Success bool `json:"success"`
}
