// Package entity defines data structures shared by the web layer.
package entity

// Msg is the JSON envelope returned by the API-style endpoints.
type Msg struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
