// Package errors holds the error bodies the API returns to clients.
package errors

// DomainError is a client-facing error with a stable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *DomainError) Error() string {
	return e.Message
}
