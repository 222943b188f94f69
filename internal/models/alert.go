package models

import "time"

// AlertSeverity orders alerts in the aggregated feed.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// AlertCategory identifies which derivation produced an alert.
type AlertCategory string

const (
	CategoryCompliance AlertCategory = "compliance"
	CategoryTrip       AlertCategory = "trip"
)

// Alert is a derived row in the dashboard feed. Alerts are regenerated
// on every aggregation pass and never stored.
type Alert struct {
	SourceID    string        `json:"sourceId"`
	SourceLabel string        `json:"sourceLabel"`
	Category    AlertCategory `json:"category"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	GeneratedAt time.Time     `json:"generatedAt"`
}
