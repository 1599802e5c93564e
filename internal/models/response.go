package models

import "time"

// MessageResponse is the body of every plain error response
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationFailedResponse is returned when a payload fails validation
type ValidationFailedResponse struct {
	Message string       `json:"message"`
	Issues  []FieldIssue `json:"issues"`
}

// HealthResponse reports process and database health.
// QuoteRequests is omitted when the database could not be queried.
type HealthResponse struct {
	Status        string    `json:"status"`
	Time          time.Time `json:"time"`
	Database      string    `json:"database"`
	QuoteRequests *int      `json:"quoteRequests,omitempty"`
}
