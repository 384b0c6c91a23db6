package models

// ApiResponse is the JSON envelope returned by every endpoint.
type ApiResponse struct {
	Success            bool      `json:"success"`
	Message            string    `json:"message,omitempty"`
	IsAcceptingMessage *bool     `json:"isAcceptingMessage,omitempty"`
	Messages           []Message `json:"messages,omitempty"`
	Suggestions        string    `json:"suggestions,omitempty"`
}
