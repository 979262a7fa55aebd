// Package model defines the data types shared across the prospecting pipeline.
package model

import "time"

// ClinicRecord is the unit of output: one row per site where a competitor
// signature was found. Only WebsiteURL and WebsiteProvider are guaranteed
// non-empty; every other field is a best-effort extraction.
type ClinicRecord struct {
	ClinicName      string `csv:"clinic_name" json:"clinic_name"`
	ProviderName    string `csv:"provider_name" json:"provider_name"`
	Credentials     string `csv:"credentials" json:"credentials"`
	WebsiteURL      string `csv:"website_url" json:"website_url"`
	CityState       string `csv:"city_state" json:"city_state"`
	ContactInfo     string `csv:"contact_info" json:"contact_info"`
	WebsiteProvider string `csv:"website_provider" json:"website_provider"`
}

// MatchResult is the outcome of a competitor signature scan over one site.
// Vendor is set iff Found is true, and is always a member of the configured
// competitor set.
type MatchResult struct {
	Found  bool   `json:"found"`
	Vendor string `json:"vendor,omitempty"`
}

// RunStatus represents the current state of a scan run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// ScanRun is the ledger entry for one batch scan.
type ScanRun struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	Status     RunStatus  `json:"status"`
	URLCount   int        `json:"url_count"`
	MatchCount int        `json:"match_count"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
