package services

import (
	"errors"
	"fmt"
	"time"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

// expiry classification thresholds, in whole days
const (
	criticalWindowDays = 30
	warningWindowDays  = 90
)

// DaysUntil returns ceil((expiry - now) / 1 day) using integer day
// counts only, so boundary values classify deterministically.
func DaysUntil(expiry, now time.Time) int {
	diff := expiry.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// ClassifyExpiry maps a document expiry date and a reference now to a
// compliance bucket plus the exact label the UI renders. Pure; safe to
// call concurrently.
func ClassifyExpiry(expiry, now time.Time) models.ExpiryStatus {
	days := DaysUntil(expiry, now)
	switch {
	case days <= 0:
		return models.ExpiryStatus{
			Bucket:   models.BucketExpired,
			DaysLeft: days,
			Label:    "Expired",
			Severity: models.SeverityCritical,
		}
	case days <= criticalWindowDays:
		return models.ExpiryStatus{
			Bucket:   models.BucketCritical,
			DaysLeft: days,
			Label:    fmt.Sprintf("%d days left", days),
			Severity: models.SeverityCritical,
		}
	case days <= warningWindowDays:
		return models.ExpiryStatus{
			Bucket:   models.BucketWarning,
			DaysLeft: days,
			Label:    fmt.Sprintf("%d days left", days),
			Severity: models.SeverityWarning,
		}
	default:
		return models.ExpiryStatus{
			Bucket:   models.BucketValid,
			DaysLeft: days,
			Label:    fmt.Sprintf("Exp in %d months", days/30),
			Severity: models.SeverityInfo,
		}
	}
}

type ComplianceService struct {
	busRepo    *repository.BusRepository
	driverRepo *repository.DriverRepository
}

func NewComplianceService(busRepo *repository.BusRepository, driverRepo *repository.DriverRepository) *ComplianceService {
	return &ComplianceService{
		busRepo:    busRepo,
		driverRepo: driverRepo,
	}
}

type UpsertDocumentRequest struct {
	Kind       models.DocumentKind `json:"kind" validate:"required,oneof=FitnessCertificate Insurance PUC Permit Tax License"`
	Number     string              `json:"number" validate:"required"`
	IssueDate  string              `json:"issueDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate string              `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Authority  string              `json:"authority,omitempty"`
	FileRef    string              `json:"fileRef,omitempty"`
}

// DocumentView is a document joined with its computed expiry status,
// ready for immediate display.
type DocumentView struct {
	Name     string                    `json:"name"`
	Document models.ComplianceDocument `json:"document"`
	Status   models.ExpiryStatus       `json:"status"`
}

// UpsertBusDocument creates or renews a bus compliance document and
// returns the recomputed bucket. A renewal replaces the old dates and
// file reference; no version history is kept.
func (s *ComplianceService) UpsertBusDocument(busID string, req *UpsertDocumentRequest, now time.Time) (*DocumentView, error) {
	if req.Kind == models.DocLicense {
		return nil, errors.New("license documents belong to drivers")
	}

	bus, err := s.busRepo.FindByID(busID)
	if err != nil {
		return nil, err
	}

	doc, err := documentFromRequest(req)
	if err != nil {
		return nil, err
	}

	if existing := bus.Document(req.Kind); existing != nil {
		*existing = *doc
	} else {
		bus.Documents = append(bus.Documents, *doc)
	}
	bus.UpdatedAt = now

	if _, err := s.busRepo.Update(busID, bus); err != nil {
		return nil, err
	}

	return &DocumentView{
		Name:     models.DocumentKindName[doc.Kind],
		Document: *doc,
		Status:   ClassifyExpiry(doc.Expiry, now),
	}, nil
}

// UpsertDriverDocument creates or renews a driver's license document.
func (s *ComplianceService) UpsertDriverDocument(driverID string, req *UpsertDocumentRequest, now time.Time) (*DocumentView, error) {
	if req.Kind != models.DocLicense {
		return nil, errors.New("only license documents belong to drivers")
	}

	driver, err := s.driverRepo.FindByID(driverID)
	if err != nil {
		return nil, err
	}

	doc, err := documentFromRequest(req)
	if err != nil {
		return nil, err
	}

	if existing := driver.License(); existing != nil {
		*existing = *doc
	} else {
		driver.Documents = append(driver.Documents, *doc)
	}
	driver.UpdatedAt = now

	if _, err := s.driverRepo.Update(driverID, driver); err != nil {
		return nil, err
	}

	return &DocumentView{
		Name:     models.DocumentKindName[doc.Kind],
		Document: *doc,
		Status:   ClassifyExpiry(doc.Expiry, now),
	}, nil
}

// BusDocuments returns every document on a bus with its computed
// status, in the fixed document-kind order the compliance table uses.
func (s *ComplianceService) BusDocuments(busID string, now time.Time) ([]DocumentView, error) {
	bus, err := s.busRepo.FindByID(busID)
	if err != nil {
		return nil, err
	}

	views := make([]DocumentView, 0, len(bus.Documents))
	for _, kind := range models.BusDocumentKinds {
		doc := bus.Document(kind)
		if doc == nil {
			continue
		}
		views = append(views, DocumentView{
			Name:     models.DocumentKindName[kind],
			Document: *doc,
			Status:   ClassifyExpiry(doc.Expiry, now),
		})
	}

	return views, nil
}

func documentFromRequest(req *UpsertDocumentRequest) (*models.ComplianceDocument, error) {
	issued, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return nil, newValidationError("issueDate", "must be a date in YYYY-MM-DD format")
	}
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, newValidationError("expiryDate", "must be a date in YYYY-MM-DD format")
	}
	if !expiry.After(issued) {
		return nil, newValidationError("expiryDate", "must be after the issue date")
	}

	return &models.ComplianceDocument{
		Kind:      req.Kind,
		Number:    req.Number,
		IssueDate: issued,
		Expiry:    expiry,
		Authority: req.Authority,
		FileRef:   req.FileRef,
	}, nil
}
