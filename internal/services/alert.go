package services

import (
	"fmt"
	"sort"
	"time"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

// AlertService merges compliance-expiry alerts and trip-issue alerts
// into the single ranked feed the dashboard consumes. Aggregation is
// pure given its inputs and the explicitly passed now; repeated passes
// over the same snapshot produce identical output.
type AlertService struct {
	busRepo    *repository.BusRepository
	driverRepo *repository.DriverRepository
	tripRepo   *repository.TripRepository
}

func NewAlertService(busRepo *repository.BusRepository, driverRepo *repository.DriverRepository, tripRepo *repository.TripRepository) *AlertService {
	return &AlertService{
		busRepo:    busRepo,
		driverRepo: driverRepo,
		tripRepo:   tripRepo,
	}
}

// Collect snapshots the repositories once and aggregates the feed
// against a single now value.
func (s *AlertService) Collect(now time.Time) ([]models.Alert, error) {
	buses, err := s.busRepo.FindAll()
	if err != nil {
		return nil, err
	}
	drivers, err := s.driverRepo.FindAll()
	if err != nil {
		return nil, err
	}
	trips, err := s.tripRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return CollectAlerts(buses, drivers, trips, now), nil
}

// Summary counts the current feed by severity and category, feeding
// the dashboard stat cards.
func (s *AlertService) Summary(now time.Time) (map[string]interface{}, error) {
	alerts, err := s.Collect(now)
	if err != nil {
		return nil, err
	}

	bySeverity := map[models.AlertSeverity]int{
		models.SeverityCritical: 0,
		models.SeverityWarning:  0,
		models.SeverityInfo:     0,
	}
	byCategory := map[models.AlertCategory]int{
		models.CategoryCompliance: 0,
		models.CategoryTrip:       0,
	}
	for _, alert := range alerts {
		bySeverity[alert.Severity]++
		byCategory[alert.Category]++
	}

	return map[string]interface{}{
		"total":       len(alerts),
		"by_severity": bySeverity,
		"by_category": byCategory,
	}, nil
}

// rankedAlert keeps the per-category ordering key next to the alert it
// ranks.
type rankedAlert struct {
	alert models.Alert
	key   int64
}

// CollectAlerts builds the merged feed: one compliance alert per
// Critical or Expired document, one summary row for the Warning
// bucket, and one alert per active issue tag on a non-terminal trip.
// Critical severity sorts first; within a severity, documents order by
// earliest expiry and trip issues by most recently raised. The feed is
// deduplicated by (source id, category, message).
func CollectAlerts(buses []*models.Bus, drivers []*models.Driver, trips []*models.Trip, now time.Time) []models.Alert {
	var ranked []rankedAlert
	expiringSoon := 0

	addDocument := func(sourceID, sourceLabel string, doc models.ComplianceDocument) {
		status := ClassifyExpiry(doc.Expiry, now)
		switch status.Bucket {
		case models.BucketExpired, models.BucketCritical:
			ranked = append(ranked, rankedAlert{
				alert: models.Alert{
					SourceID:    sourceID,
					SourceLabel: sourceLabel,
					Category:    models.CategoryCompliance,
					Severity:    status.Severity,
					Message:     fmt.Sprintf("%s: %s", models.DocumentKindName[doc.Kind], status.Label),
					GeneratedAt: now,
				},
				key: doc.Expiry.Unix(),
			})
		case models.BucketWarning:
			expiringSoon++
		}
	}

	for _, bus := range buses {
		for _, doc := range bus.Documents {
			addDocument(bus.ID, bus.BusNo, doc)
		}
	}
	for _, driver := range drivers {
		for _, doc := range driver.Documents {
			addDocument(driver.ID, driver.Name, doc)
		}
	}

	// Warning-bucket documents surface as one "expiring soon" banner
	// row instead of individual alerts.
	if expiringSoon > 0 {
		ranked = append(ranked, rankedAlert{
			alert: models.Alert{
				SourceID:    "fleet",
				SourceLabel: "Fleet",
				Category:    models.CategoryCompliance,
				Severity:    models.SeverityWarning,
				Message:     fmt.Sprintf("%d document(s) expiring within 90 days", expiringSoon),
				GeneratedAt: now,
			},
			key: now.Unix(),
		})
	}

	for _, trip := range trips {
		if trip.State.Terminal() {
			continue
		}
		for _, issue := range trip.Issues {
			severity := models.SeverityWarning
			if issue.Blocking() {
				severity = models.SeverityCritical
			}
			ranked = append(ranked, rankedAlert{
				alert: models.Alert{
					SourceID:    trip.ID,
					SourceLabel: trip.BusNo,
					Category:    models.CategoryTrip,
					Severity:    severity,
					Message:     issue.Tag,
					GeneratedAt: now,
				},
				// negated so that most recently raised sorts first
				key: -issue.RaisedAt.Unix(),
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.alert.Severity != b.alert.Severity {
			return severityRank(a.alert.Severity) < severityRank(b.alert.Severity)
		}
		if a.alert.Category != b.alert.Category {
			return a.alert.Category < b.alert.Category
		}
		if a.key != b.key {
			return a.key < b.key
		}
		if a.alert.SourceID != b.alert.SourceID {
			return a.alert.SourceID < b.alert.SourceID
		}
		return a.alert.Message < b.alert.Message
	})

	seen := make(map[string]struct{}, len(ranked))
	feed := make([]models.Alert, 0, len(ranked))
	for _, r := range ranked {
		dedupeKey := r.alert.SourceID + "|" + string(r.alert.Category) + "|" + r.alert.Message
		if _, dup := seen[dedupeKey]; dup {
			continue
		}
		seen[dedupeKey] = struct{}{}
		feed = append(feed, r.alert)
	}
	return feed
}

func severityRank(s models.AlertSeverity) int {
	switch s {
	case models.SeverityCritical:
		return 0
	case models.SeverityWarning:
		return 1
	default:
		return 2
	}
}
