package models

// Pagination describes standard list metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// DateOnly is the wire format for calendar dates. Zero-padded ISO dates
// compare lexicographically in chronological order, which the scheduling
// core relies on throughout.
const DateOnly = "2006-01-02"
