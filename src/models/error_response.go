package models

// ErrorResponse is the standard error envelope for every endpoint.
type ErrorResponse struct {
	Status  int    `json:"status"`  // HTTP status code
	Message string `json:"message"` // safe, guest-visible detail
}

// ValidationErrorResponse carries the per-field error map for a rejected
// submission. Keys are field identifiers.
type ValidationErrorResponse struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}
