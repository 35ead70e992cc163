package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by every
// failing endpoint.
//
// Fields:
//   - Message: short, user-facing description of what went wrong.
//   - ErrorDetails: underlying error text, when one exists. Kept separate
//     so clients can show Message alone and log the details.
//   - Timestamp: moment the response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"no readable table found"`
	ErrorDetails string    `json:"error,omitempty" example:"tried 80 combinations"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel
// through gin's error list and still render consistently.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
