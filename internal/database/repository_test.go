package database

import (
	"context"
	"testing"

	"fleetchat/internal/models"
)

func testRepo(t *testing.T) (*Repository, int64) {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db, 50)
	userID, err := repo.EnsureDefaultUser()
	if err != nil {
		t.Fatalf("ensuring default user: %v", err)
	}
	return repo, userID
}

func TestNewUsersStartWithConfiguredQuota(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db, 7)

	defaultID, err := repo.EnsureDefaultUser()
	if err != nil {
		t.Fatalf("ensuring default user: %v", err)
	}
	def, err := repo.GetUser(defaultID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if def.MessagesRemaining != 7 {
		t.Fatalf("default user messages_remaining = %d, want 7", def.MessagesRemaining)
	}

	u, err := repo.CreateUser("driver")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.MessagesRemaining != 7 {
		t.Fatalf("new user messages_remaining = %d, want 7", u.MessagesRemaining)
	}
}

func TestDefaultUserEntitlements(t *testing.T) {
	repo, userID := testRepo(t)

	u, err := repo.GetUser(userID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.Plan != "free" {
		t.Fatalf("plan = %q, want free", u.Plan)
	}
	if u.MessagesRemaining <= 0 {
		t.Fatalf("messages_remaining = %d, want > 0", u.MessagesRemaining)
	}
	if !u.AIEnabled {
		t.Fatal("ai_enabled should default to true")
	}
}

func TestCreateAndListVehicles(t *testing.T) {
	repo, userID := testRepo(t)

	_, err := repo.CreateVehicle(userID, models.Vehicle{
		Name: "Alpha", Type: "car", RatedEfficiency: 18,
		MonthlyLoanPayment: 9000, MonthlyLaborCost: 3000, MonthlyMaintenance: 1500,
	})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}
	_, err = repo.CreateVehicle(userID, models.Vehicle{Name: "Bravo", Type: "van", RatedEfficiency: 12})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}

	vehicles, err := repo.ListActiveVehicles(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListActiveVehicles failed: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2", len(vehicles))
	}
	// Stable insertion order matters for deterministic tie-breaks downstream.
	if vehicles[0].Name != "Alpha" || vehicles[1].Name != "Bravo" {
		t.Fatalf("order = %s, %s; want Alpha, Bravo", vehicles[0].Name, vehicles[1].Name)
	}
	if vehicles[0].MonthlyLoanPayment != 9000 {
		t.Fatalf("loan payment = %v, want 9000", vehicles[0].MonthlyLoanPayment)
	}
}

func TestListDailyRecordsJoinsVehicle(t *testing.T) {
	repo, userID := testRepo(t)

	v, err := repo.CreateVehicle(userID, models.Vehicle{
		Name: "Alpha", Type: "car", RatedEfficiency: 18, MonthlyLoanPayment: 9000,
	})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}

	for _, rec := range []models.Record{
		{VehicleID: v.ID, RecordDate: "2026-08-10", Earnings: 1200, DistanceKm: 90, FuelConsumed: 6, FuelCost: 500, TollCost: 60},
		{VehicleID: v.ID, RecordDate: "2026-08-12", Earnings: 800, DistanceKm: 60, FoodCost: 150},
		{VehicleID: v.ID, RecordDate: "2026-07-01", Earnings: 999, DistanceKm: 10},
	} {
		if _, err := repo.CreateRecord(userID, rec); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	records, err := repo.ListDailyRecords(context.Background(), userID, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("ListDailyRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (July row excluded)", len(records))
	}
	first := records[0]
	if first.RecordDate != "2026-08-10" {
		t.Fatalf("order: first record date = %s, want 2026-08-10", first.RecordDate)
	}
	if first.VehicleName != "Alpha" || first.RatedEfficiency != 18 || first.MonthlyLoanPayment != 9000 {
		t.Fatalf("vehicle join missing: %+v", first)
	}
}

func TestWindowTotals(t *testing.T) {
	repo, userID := testRepo(t)

	v, err := repo.CreateVehicle(userID, models.Vehicle{Name: "Alpha", Type: "car"})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}
	for _, rec := range []models.Record{
		{VehicleID: v.ID, RecordDate: "2026-08-10", Earnings: 100, DistanceKm: 50, FuelCost: 20, TollCost: 5},
		{VehicleID: v.ID, RecordDate: "2026-08-11", Earnings: 200, DistanceKm: 70, RepairCost: 30},
	} {
		if _, err := repo.CreateRecord(userID, rec); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	totals, err := repo.WindowTotals(context.Background(), userID, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("WindowTotals failed: %v", err)
	}
	if totals.Earnings != 300 || totals.Expenses != 55 || totals.DistanceKm != 120 || totals.TripCount != 2 {
		t.Fatalf("totals = %+v", totals)
	}

	empty, err := repo.WindowTotals(context.Background(), userID, "2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("WindowTotals failed: %v", err)
	}
	if empty != (models.WindowTotals{}) {
		t.Fatalf("empty window totals = %+v, want zeroes", empty)
	}
}

func TestListRecentRecordsNewestFirst(t *testing.T) {
	repo, userID := testRepo(t)

	v, err := repo.CreateVehicle(userID, models.Vehicle{Name: "Alpha", Type: "car"})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}
	for _, date := range []string{"2026-08-01", "2026-08-03", "2026-08-02"} {
		if _, err := repo.CreateRecord(userID, models.Record{VehicleID: v.ID, RecordDate: date, Earnings: 1}); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	records, err := repo.ListRecentRecords(userID, 2)
	if err != nil {
		t.Fatalf("ListRecentRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].RecordDate != "2026-08-03" || records[1].RecordDate != "2026-08-02" {
		t.Fatalf("order = %s, %s; want 2026-08-03, 2026-08-02", records[0].RecordDate, records[1].RecordDate)
	}
}
