package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

func busWithDocs(id, busNo string, docs ...models.ComplianceDocument) *models.Bus {
	return &models.Bus{
		ID: id, BusNo: busNo, RegNo: busNo, Capacity: 50,
		Lifecycle: models.NewLifecycle(), Documents: docs,
	}
}

func doc(kind models.DocumentKind, expiry time.Time) models.ComplianceDocument {
	return models.ComplianceDocument{
		Kind: kind, Number: "N-" + string(kind),
		IssueDate: expiry.Add(-365 * 24 * time.Hour), Expiry: expiry,
	}
}

func TestCollectAlertsComplianceBuckets(t *testing.T) {
	buses := []*models.Bus{
		busWithDocs("bus-1", "AP01AB1234",
			doc(models.DocFitnessCertificate, clock.Add(15*24*time.Hour)), // critical
			doc(models.DocPollutionCertificate, clock.Add(72*24*time.Hour)), // warning
			doc(models.DocInsurance, clock.Add(350*24*time.Hour)),           // valid
		),
		busWithDocs("bus-2", "AP01AD9876",
			doc(models.DocPermit, clock.Add(-2*24*time.Hour)), // expired
			doc(models.DocTaxReceipt, clock.Add(94*24*time.Hour)), // valid
		),
	}

	feed := CollectAlerts(buses, nil, nil, clock)

	require.Len(t, feed, 3)
	// Expired permit has the earliest expiry, so it leads the criticals
	assert.Equal(t, "AP01AD9876", feed[0].SourceLabel)
	assert.Equal(t, "Route Permit: Expired", feed[0].Message)
	assert.Equal(t, models.SeverityCritical, feed[0].Severity)

	assert.Equal(t, "Fitness Certificate (FC): 15 days left", feed[1].Message)
	assert.Equal(t, models.SeverityCritical, feed[1].Severity)

	// The single warning document folds into one summary row
	assert.Equal(t, "fleet", feed[2].SourceID)
	assert.Equal(t, "1 document(s) expiring within 90 days", feed[2].Message)
	assert.Equal(t, models.SeverityWarning, feed[2].Severity)
}

func TestCollectAlertsDriverLicenses(t *testing.T) {
	drivers := []*models.Driver{
		{
			ID: "driver-1", Name: "Anil Singh", Phone: "x", LicenseNo: "DL87654321",
			Lifecycle: models.NewLifecycle(),
			Documents: []models.ComplianceDocument{doc(models.DocLicense, clock.Add(20*24*time.Hour))},
		},
	}

	feed := CollectAlerts(nil, drivers, nil, clock)
	require.Len(t, feed, 1)
	assert.Equal(t, "Anil Singh", feed[0].SourceLabel)
	assert.Equal(t, "Driving License: 20 days left", feed[0].Message)
	assert.Equal(t, models.SeverityCritical, feed[0].Severity)
}

func TestCollectAlertsTripIssues(t *testing.T) {
	trips := []*models.Trip{
		{
			ID: "trip-1", BusNo: "AP01AB5678", State: models.TripDelayed,
			Issues: []models.IssueTag{{Tag: "Late 12min", RaisedAt: clock.Add(-10 * time.Minute)}},
		},
		{
			ID: "trip-2", BusNo: "AP01AG2222", State: models.TripStopped,
			Issues: []models.IssueTag{{Tag: "Breakdown", RaisedAt: clock.Add(-5 * time.Minute)}},
		},
		{
			ID: "trip-3", BusNo: "AP01AE4321", State: models.TripCompleted,
			Issues: []models.IssueTag{{Tag: "Low Fuel", RaisedAt: clock.Add(-30 * time.Minute)}},
		},
	}

	feed := CollectAlerts(nil, nil, trips, clock)

	// The completed trip's issue is not alertable
	require.Len(t, feed, 2)
	assert.Equal(t, "Breakdown", feed[0].Message)
	assert.Equal(t, models.SeverityCritical, feed[0].Severity)
	assert.Equal(t, "Late 12min", feed[1].Message)
	assert.Equal(t, models.SeverityWarning, feed[1].Severity)
}

func TestCollectAlertsOrdering(t *testing.T) {
	buses := []*models.Bus{
		busWithDocs("bus-1", "AP01AB1234", doc(models.DocFitnessCertificate, clock.Add(15*24*time.Hour))),
	}
	trips := []*models.Trip{
		{
			ID: "trip-1", BusNo: "AP01AG2222", State: models.TripStopped,
			Issues: []models.IssueTag{{Tag: "Breakdown", RaisedAt: clock.Add(-5 * time.Minute)}},
		},
		{
			ID: "trip-2", BusNo: "AP01AB5678", State: models.TripDelayed,
			Issues: []models.IssueTag{
				{Tag: "Traffic Jam", RaisedAt: clock.Add(-20 * time.Minute)},
				{Tag: "Late 12min", RaisedAt: clock.Add(-10 * time.Minute)},
			},
		},
	}

	feed := CollectAlerts(buses, nil, trips, clock)
	require.Len(t, feed, 4)

	// Critical first; compliance before trip within a severity
	assert.Equal(t, "Fitness Certificate (FC): 15 days left", feed[0].Message)
	assert.Equal(t, "Breakdown", feed[1].Message)
	// Trip warnings order most recently raised first
	assert.Equal(t, "Late 12min", feed[2].Message)
	assert.Equal(t, "Traffic Jam", feed[3].Message)
}

func TestCollectAlertsDeduplicates(t *testing.T) {
	// Two documents producing an identical (source, category, message)
	// triple collapse to one alert
	buses := []*models.Bus{
		busWithDocs("bus-1", "AP01AB1234",
			doc(models.DocFitnessCertificate, clock.Add(15*24*time.Hour)),
			doc(models.DocFitnessCertificate, clock.Add(15*24*time.Hour)),
		),
	}

	feed := CollectAlerts(buses, nil, nil, clock)
	assert.Len(t, feed, 1)
}

func TestCollectAlertsIdempotent(t *testing.T) {
	buses := []*models.Bus{
		busWithDocs("bus-1", "AP01AB1234",
			doc(models.DocFitnessCertificate, clock.Add(15*24*time.Hour)),
			doc(models.DocPollutionCertificate, clock.Add(72*24*time.Hour)),
		),
	}
	trips := []*models.Trip{
		{
			ID: "trip-1", BusNo: "AP01AB5678", State: models.TripDelayed,
			Issues: []models.IssueTag{{Tag: "Late 12min", RaisedAt: clock.Add(-10 * time.Minute)}},
		},
	}

	first := CollectAlerts(buses, nil, trips, clock)
	second := CollectAlerts(buses, nil, trips, clock)
	assert.Equal(t, first, second)
}

func TestAlertServiceSummary(t *testing.T) {
	busRepo := repository.NewBusRepository()
	driverRepo := repository.NewDriverRepository()
	tripRepo := repository.NewTripRepository()

	_, err := busRepo.Create(busWithDocs("bus-1", "AP01AB1234",
		doc(models.DocFitnessCertificate, clock.Add(15*24*time.Hour)),
		doc(models.DocPollutionCertificate, clock.Add(72*24*time.Hour)),
	))
	require.NoError(t, err)

	_, err = tripRepo.Create(&models.Trip{
		ID: "trip-1", BusNo: "AP01AB5678", State: models.TripStopped,
		Issues: []models.IssueTag{{Tag: "Breakdown", RaisedAt: clock.Add(-5 * time.Minute)}},
	})
	require.NoError(t, err)

	svc := NewAlertService(busRepo, driverRepo, tripRepo)
	summary, err := svc.Summary(clock)
	require.NoError(t, err)

	assert.Equal(t, 3, summary["total"])
	bySeverity := summary["by_severity"].(map[models.AlertSeverity]int)
	assert.Equal(t, 2, bySeverity[models.SeverityCritical])
	assert.Equal(t, 1, bySeverity[models.SeverityWarning])
	byCategory := summary["by_category"].(map[models.AlertCategory]int)
	assert.Equal(t, 2, byCategory[models.CategoryCompliance])
	assert.Equal(t, 1, byCategory[models.CategoryTrip])
}
