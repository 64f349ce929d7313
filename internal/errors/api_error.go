package errors

// APIError is the JSON body of every failed optimization request.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewAPIError creates a new APIError with the given message.
func NewAPIError(message string) *APIError {
	return &APIError{
		Success: false,
		Error:   message,
	}
}
