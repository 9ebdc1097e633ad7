package dto

import "time"

// ErrorResponse is the JSON body of every failed request.
//
// Upstream failures are reported with a category message only; ErrorDetails
// is reserved for client mistakes (e.g., a malformed query parameter).
type ErrorResponse struct {
	Message      string    `json:"error" example:"market data source unavailable"`
	ErrorDetails string    `json:"details,omitempty" example:"unknown market \"DE\""`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
