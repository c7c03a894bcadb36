package common

import "time"

// ListResponse wraps a collection with its size
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

// TimestampResponse represents common timestamp fields
type TimestampResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeletedResponse reports how many rows a bulk delete removed
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
