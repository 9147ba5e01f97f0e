// Package response defines the HTTP response envelope and the single place
// where application error codes become HTTP status codes.
package response

// Envelope is the uniform response body. Data is set on success, Code and
// Message on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
