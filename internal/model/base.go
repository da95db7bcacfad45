package model

// StatusCode is the small integer lifecycle code kept in the estado columns.
// The numeric values are the store's wire contract and must not change.
type StatusCode int

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}
