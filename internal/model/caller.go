package model

import "time"

// Caller is one row of the caller-analysis table: a phone number seen by the call center
// together with its aggregated call statistics and the tags agents attached to it.
type Caller struct {
	ID               string    `json:"id"`
	PhoneNumber      string    `json:"phone_number"`
	DisplayName      string    `json:"display_name"`
	Organization     string    `json:"organization"`
	TotalCalls       int       `json:"total_calls"`
	TotalDurationSec int64     `json:"total_duration_sec"`
	AvgDurationSec   float64   `json:"avg_duration_sec"`
	LastCallAt       time.Time `json:"last_call_at"`
	Tags             []string  `json:"tags"`
	CreatedAt        time.Time `json:"created_at"`
}

// CallerFilter narrows caller listings. Empty fields do not filter.
type CallerFilter struct {
	Organization string `json:"organization,omitempty"`
	Tag          string `json:"tag,omitempty"`
	// Search matches phone number or display name, case-insensitive.
	Search string `json:"search,omitempty"`
}

// Export describes a CSV export stored in object storage.
type Export struct {
	Key       string       `json:"key"`
	Records   int          `json:"records"`
	Filter    CallerFilter `json:"filter"`
	URL       string       `json:"url"`
	ExpiresAt time.Time    `json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`
}
