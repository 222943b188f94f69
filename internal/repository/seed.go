package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"transport-backend/internal/models"
)

// Seed loads the demonstration fleet into the in-memory stores: five
// buses with compliance documents, five drivers, five students, three
// routes with ordered stop sequences, a morning trip board and the two
// fixed admin accounts.
func Seed(now time.Time, buses *BusRepository, drivers *DriverRepository, students *StudentRepository, routes *RouteRepository, trips *TripRepository, users *UserRepository) error {
	if err := seedUsers(now, users); err != nil {
		return err
	}
	routeIDs, err := seedRoutes(now, routes)
	if err != nil {
		return err
	}
	if err := seedBuses(now, buses); err != nil {
		return err
	}
	if err := seedDrivers(now, drivers); err != nil {
		return err
	}
	if err := seedStudents(now, students); err != nil {
		return err
	}
	return seedTrips(now, routeIDs, trips)
}

func seedUsers(now time.Time, users *UserRepository) error {
	seed := []struct {
		name, email, password, role string
	}{
		{"College Admin", "admin@college.edu", "password123", "admin"},
		{"Super Admin", "superadmin@college.edu", "superpassword123", "superadmin"},
	}

	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := users.Create(&models.User{
			ID:        uuid.NewString(),
			Name:      u.name,
			Email:     u.email,
			Password:  string(hash),
			Role:      u.role,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func seedRoutes(now time.Time, routes *RouteRepository) (map[string]string, error) {
	gudurStops := []models.Stop{
		{Name: "Gudur Bus Stand", DistanceKm: 0, PlannedAt: "06:30 AM", WaitMin: 2},
		{Name: "Gandhi Circle", DistanceKm: 2.3, PlannedAt: "06:35 AM", WaitMin: 3},
		{Name: "Railway Colony", DistanceKm: 3.8, PlannedAt: "06:40 AM", WaitMin: 2},
		{Name: "Market Junction", DistanceKm: 5.5, PlannedAt: "06:44 AM", WaitMin: 2},
		{Name: "Hospital Jn", DistanceKm: 7.2, PlannedAt: "06:48 AM", WaitMin: 2},
		{Name: "Rural Village", DistanceKm: 10.4, PlannedAt: "06:54 AM", WaitMin: 2},
		{Name: "Temple Street", DistanceKm: 13.0, PlannedAt: "07:00 AM", WaitMin: 2},
		{Name: "Canal Road", DistanceKm: 16.2, PlannedAt: "07:08 AM", WaitMin: 2},
		{Name: "Highway Cross", DistanceKm: 19.8, PlannedAt: "07:16 AM", WaitMin: 2},
		{Name: "Industrial Gate", DistanceKm: 23.1, PlannedAt: "07:26 AM", WaitMin: 2},
		{Name: "Engineering Block", DistanceKm: 25.3, PlannedAt: "07:36 AM", WaitMin: 2},
		{Name: "College Gate", DistanceKm: 28.5, PlannedAt: "07:45 AM"},
	}
	ruralStops := make([]models.Stop, 11)
	for i := range ruralStops {
		ruralStops[i] = models.Stop{
			Name:       fmt.Sprintf("Rural Stop %d", i+1),
			DistanceKm: 3.2 * float64(i),
		}
	}
	ruralStops[0].Name = "Village Center"
	ruralStops[10].Name = "College Gate"
	cityStops := make([]models.Stop, 8)
	for i := range cityStops {
		cityStops[i] = models.Stop{
			Name:       fmt.Sprintf("City Stop %d", i+1),
			DistanceKm: 2.1 * float64(i),
		}
	}
	cityStops[0].Name = "Main Market"
	cityStops[7].Name = "College Gate"

	seed := []*models.Route{
		{ID: uuid.NewString(), Name: "Gudur Main → College", Status: models.RouteActive, Stops: gudurStops, DistanceKm: 28.5, Duration: "75 min", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Rural Area → College", Status: models.RouteScheduled, Stops: ruralStops, DistanceKm: 35.2, Duration: "90 min", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "City Center → College", Status: models.RouteInactive, Stops: cityStops, DistanceKm: 15.0, Duration: "45 min", CreatedAt: now, UpdatedAt: now},
	}

	ids := make(map[string]string, len(seed))
	for _, route := range seed {
		if _, err := routes.Create(route); err != nil {
			return nil, err
		}
		ids[route.Name] = route.ID
	}
	return ids, nil
}

func seedBuses(now time.Time, buses *BusRepository) error {
	day := 24 * time.Hour

	seed := []*models.Bus{
		{
			ID: uuid.NewString(), BusNo: "AP01AB1234", RegNo: "AP01AB1234",
			Model: "2022 Ashok Leyland", Capacity: 50, Driver: "Raj Kumar",
			LastTrip: "Today 4:30PM", Lifecycle: models.NewLifecycle(),
			Documents: []models.ComplianceDocument{
				{Kind: models.DocFitnessCertificate, Number: "TCAP123456789", IssueDate: now.Add(-240 * day), Expiry: now.Add(15 * day), Authority: "AP RTO Gudur", FileRef: "fc_cert.pdf"},
				{Kind: models.DocInsurance, Number: "IRDA1234567890", IssueDate: now.Add(-15 * day), Expiry: now.Add(350 * day), Authority: "New India Assurance", FileRef: "insurance.pdf"},
				{Kind: models.DocPollutionCertificate, Number: "PUCAP123456", IssueDate: now.Add(-108 * day), Expiry: now.Add(72 * day), Authority: "Galaxy Services", FileRef: "puc.pdf"},
				{Kind: models.DocPermit, Number: "EDUAP123456", IssueDate: now.Add(-1250 * day), Expiry: now.Add(440 * day), Authority: "AP RTO Gudur", FileRef: "permit.pdf"},
				{Kind: models.DocTaxReceipt, Number: "TAXREC_Q1_2026", IssueDate: now.Add(-1 * day), Expiry: now.Add(94 * day), Authority: "AP Transport Dept.", FileRef: "tax.pdf"},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AB5678", RegNo: "AP01AB5678",
			Model: "2021 Tata Marcopolo", Capacity: 40, Driver: "Suresh Kumar",
			LastTrip:  "Yday 3:15PM",
			Lifecycle: seededLifecycle(models.StatusMaintenance, "Gearbox overhaul at depot workshop", now.Add(-2*day)),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AC7890", RegNo: "AP01AC7890",
			Model: "2023 Eicher Starline", Capacity: 55, Driver: "Ramesh Patel",
			LastTrip: "Today 5:00PM", Lifecycle: models.NewLifecycle(),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AD9876", RegNo: "AP01AD9876",
			Model: "2020 BharatBenz", Capacity: 50, Driver: "Anil Sharma",
			LastTrip:  "2 days ago",
			Lifecycle: seededLifecycle(models.StatusInactive, "Held pending insurance renewal paperwork", now.Add(-5*day)),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AE4321", RegNo: "AP01AE4321",
			Model: "2022 Ashok Leyland", Capacity: 45, Driver: "Vikram Singh",
			LastTrip: "Today 4:45PM", Lifecycle: models.NewLifecycle(),
			CreatedAt: now, UpdatedAt: now,
		},
	}

	for _, bus := range seed {
		if _, err := buses.Create(bus); err != nil {
			return err
		}
	}
	return nil
}

func seedDrivers(now time.Time, drivers *DriverRepository) error {
	day := 24 * time.Hour

	license := func(no string, expiresIn time.Duration) []models.ComplianceDocument {
		return []models.ComplianceDocument{{
			Kind:      models.DocLicense,
			Number:    no,
			IssueDate: now.Add(-5 * 365 * day),
			Expiry:    now.Add(expiresIn),
			Authority: "AP RTO Gudur",
		}}
	}

	seed := []*models.Driver{
		{ID: uuid.NewString(), Name: "Raj Kumar", Phone: "+91-9876543210", LicenseNo: "DL12345678", AssignedBus: "AP01AB1234", Lifecycle: models.NewLifecycle(), Documents: license("DL12345678", 290*day), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Anil Singh", Phone: "+91-9988776655", LicenseNo: "DL87654321", AssignedBus: "Unassigned", Lifecycle: models.NewLifecycle(), Documents: license("DL87654321", 20*day), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Suresh Patel", Phone: "+91-9123456789", LicenseNo: "DL56781234", AssignedBus: "AP01AC7890", Lifecycle: seededLifecycle(models.StatusOnLeave, "Approved personal leave until month end", now.Add(-3*day)), Documents: license("DL56781234", 450*day), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Vikram Reddy", Phone: "+91-9000011111", LicenseNo: "DL34567812", AssignedBus: "AP01AD9876", Lifecycle: models.NewLifecycle(), Documents: license("DL34567812", 530*day), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Mahesh Babu", Phone: "+91-9222233333", LicenseNo: "DL98761234", AssignedBus: "AP01AE4321", Lifecycle: seededLifecycle(models.StatusInactive, "Resigned, serving out notice period", now.Add(-10*day)), Documents: license("DL98761234", 850*day), CreatedAt: now, UpdatedAt: now},
	}

	for _, driver := range seed {
		if _, err := drivers.Create(driver); err != nil {
			return err
		}
	}
	return nil
}

func seedStudents(now time.Time, students *StudentRepository) error {
	seed := []*models.Student{
		{ID: uuid.NewString(), StudentNo: "S001", Name: "Priya Sharma", ClassYear: "10A", Route: "Gudur Main → College", Stop: "Gandhi Circle", Bus: "AP01AB1234", ParentName: "Anita Sharma", ParentPhone: "+91-9876543210", BoardingStatus: models.BoardingConfirmed, Lifecycle: models.NewLifecycle(), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), StudentNo: "S002", Name: "Rahul Kumar", ClassYear: "12B", Route: "Rural Area → College", Stop: "Village Center", Bus: "AP01AB5678", ParentName: "Sunil Kumar", ParentPhone: "+91-9988776655", BoardingStatus: models.BoardingConfirmed, Lifecycle: seededLifecycle(models.StatusPending, "Route allocation awaiting seat confirmation", now.Add(-24*time.Hour)), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), StudentNo: "S003", Name: "Aisha Khan", ClassYear: "11C", Route: "City Center → College", Stop: "Main Market", Bus: "AP01AC7890", ParentName: "Imran Khan", ParentPhone: "+91-9123456789", BoardingStatus: models.BoardingConfirmed, Lifecycle: models.NewLifecycle(), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), StudentNo: "S004", Name: "Suresh Reddy", ClassYear: "10A", Route: "Gudur Main → College", Stop: "Hospital Jn", Bus: "AP01AB1234", ParentName: "Ramesh Reddy", ParentPhone: "+91-9000011111", BoardingStatus: models.BoardingWaitlist, Lifecycle: seededLifecycle(models.StatusNoFeePaid, "Term transport fee unpaid past due date", now.Add(-48*time.Hour)), CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), StudentNo: "S005", Name: "Anjali Verma", ClassYear: "12A", Route: "Rural Area → College", Stop: "Temple Street", Bus: "AP01AB5678", ParentName: "Prakash Verma", ParentPhone: "+91-9222233333", BoardingStatus: models.BoardingConfirmed, Lifecycle: models.NewLifecycle(), CreatedAt: now, UpdatedAt: now},
	}

	for _, student := range seed {
		if _, err := students.Create(student); err != nil {
			return err
		}
	}
	return nil
}

func seedTrips(now time.Time, routeIDs map[string]string, trips *TripRepository) error {
	morning := now.Add(-90 * time.Minute)

	seed := []*models.Trip{
		{
			ID: uuid.NewString(), BusNo: "AP01AB1234", RouteID: routeIDs["Gudur Main → College"], RouteName: "Gudur Main → College",
			Driver: "Raj Kumar", State: models.TripRunning, ScheduledAt: morning, StartedAt: morning,
			StopIndex: 8, TotalStops: 12, ProgressPercent: 67, ETA: now.Add(25 * time.Minute),
			Issues: []models.IssueTag{}, StudentsOnboard: 42, StudentsTotal: 50,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AB5678", RouteID: routeIDs["Rural Area → College"], RouteName: "Rural Area → College",
			Driver: "Anil Singh", State: models.TripDelayed, ScheduledAt: morning.Add(15 * time.Minute), StartedAt: morning.Add(15 * time.Minute),
			StopIndex: 5, TotalStops: 11, ProgressPercent: 45, ETA: now.Add(43 * time.Minute),
			Issues:    []models.IssueTag{{Tag: "Late 12min", RaisedAt: now.Add(-10 * time.Minute)}},
			StudentsOnboard: 38, StudentsTotal: 45,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AG2222", RouteID: routeIDs["Rural Area → College"], RouteName: "Rural Area → College",
			Driver: "Suresh Patel", State: models.TripStopped, ScheduledAt: morning.Add(20 * time.Minute), StartedAt: morning.Add(20 * time.Minute),
			StopIndex: 6, TotalStops: 11, ProgressPercent: 55, ETA: now.Add(57 * time.Minute),
			Issues:    []models.IssueTag{{Tag: "Breakdown", RaisedAt: now.Add(-5 * time.Minute)}},
			StudentsOnboard: 22, StudentsTotal: 45,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AF1111", RouteID: routeIDs["Gudur Main → College"], RouteName: "Gudur Main → College",
			Driver: "Vikram Reddy", State: models.TripPlanned, ScheduledAt: now.Add(65 * time.Minute),
			StopIndex: 0, TotalStops: 12,
			Issues:    []models.IssueTag{}, StudentsTotal: 50,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), BusNo: "AP01AE4321", RouteID: routeIDs["Gudur Main → College"], RouteName: "Gudur Main → College",
			Driver: "Vikram Singh", State: models.TripCompleted, ScheduledAt: morning.Add(-30 * time.Minute), StartedAt: morning.Add(-30 * time.Minute),
			CompletedAt: now.Add(-25 * time.Minute),
			StopIndex:   12, TotalStops: 12, ProgressPercent: 100,
			Issues:    []models.IssueTag{}, StudentsOnboard: 45, StudentsTotal: 45,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	for _, trip := range seed {
		if _, err := trips.Create(trip); err != nil {
			return err
		}
	}
	return nil
}

// seededLifecycle backfills the audit record that explains a non-Active
// starting status, keeping the current-status invariant intact.
func seededLifecycle(status models.LifecycleStatus, reason string, at time.Time) models.Lifecycle {
	return models.Lifecycle{
		Status: status,
		Trail: []models.StatusChangeRecord{{
			ID:             uuid.NewString(),
			PreviousStatus: models.StatusActive,
			NewStatus:      status,
			Reason:         reason,
			EffectiveFrom:  at,
			CommittedAt:    at,
			Actor:          "system-seed",
		}},
	}
}
