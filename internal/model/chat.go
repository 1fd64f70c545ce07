package model

import "time"

// Category is the semantic intent a query is routed to before a response
// is composed.
type Category string

const (
	CategorySalary       Category = "salary"
	CategoryDeductions   Category = "deductions"
	CategoryCalculations Category = "calculations"
	CategoryFallback     Category = "fallback"
)

// ChatEntry is one (query, response) exchange. Immutable after creation.
type ChatEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
}
