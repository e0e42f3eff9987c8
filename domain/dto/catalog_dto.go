package dto

import "encoding/json"

// Envelope is the {success, data} wrapper returned by every catalog API endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// VideoFilter holds the optional query parameters of GET /videos.
type VideoFilter struct {
	Search   string `url:"search,omitempty"`
	Category string `url:"category,omitempty"`
}
