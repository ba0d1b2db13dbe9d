package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"fleetchat/internal/analytics"
	"fleetchat/internal/database"
	"fleetchat/internal/models"
)

func testHandler(t *testing.T) (*Handler, *database.Repository, int64) {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := database.NewRepository(db, 50)
	h, err := New(repo, analytics.NewAggregator(repo), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("building handler: %v", err)
	}
	return h, repo, h.defaultUser
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateRecordRejectsNegativeAmounts(t *testing.T) {
	h, repo, userID := testHandler(t)

	v, err := repo.CreateVehicle(userID, models.Vehicle{Name: "Alpha", Type: "car"})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}

	cases := []struct {
		body  string
		field string
	}{
		{`{"vehicle_id": 1, "record_date": "2026-08-19", "earnings": 100, "fuel_cost": -40}`, "fuel_cost"},
		{`{"vehicle_id": 1, "record_date": "2026-08-19", "earnings": -1}`, "earnings"},
		{`{"vehicle_id": 1, "record_date": "2026-08-19", "distance_km": -5}`, "distance_km"},
		{`{"vehicle_id": 1, "record_date": "2026-08-19", "misc_cost": -0.01}`, "misc_cost"},
	}
	for _, tc := range cases {
		rec := postJSON(t, h.CreateRecord, "/api/records", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d for %s, want 400", rec.Code, tc.body)
		}
		var payload map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding error payload: %v", err)
		}
		if !strings.Contains(payload["error"], tc.field) {
			t.Fatalf("error = %q, want mention of %s", payload["error"], tc.field)
		}
	}

	// Nothing may reach the store: a persisted negative amount would surface
	// as a negative expense category in aggregation.
	records, err := repo.ListRecentRecords(userID, 10)
	if err != nil {
		t.Fatalf("ListRecentRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected records were persisted: %d found", len(records))
	}

	rec := postJSON(t, h.CreateRecord, "/api/records",
		`{"vehicle_id": `+strconv.FormatInt(v.ID, 10)+`, "record_date": "2026-08-19", "earnings": 100, "fuel_cost": 40}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid record status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateVehicleRejectsNegativeMonthlyFigures(t *testing.T) {
	h, repo, userID := testHandler(t)

	cases := []struct {
		body  string
		field string
	}{
		{`{"name": "Alpha", "monthly_loan_payment": -9000}`, "monthly_loan_payment"},
		{`{"name": "Alpha", "monthly_labor_cost": -1}`, "monthly_labor_cost"},
		{`{"name": "Alpha", "monthly_maintenance": -1}`, "monthly_maintenance"},
		{`{"name": "Alpha", "rated_efficiency": -18}`, "rated_efficiency"},
	}
	for _, tc := range cases {
		rec := postJSON(t, h.CreateVehicle, "/api/vehicles", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d for %s, want 400", rec.Code, tc.body)
		}
		var payload map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding error payload: %v", err)
		}
		if !strings.Contains(payload["error"], tc.field) {
			t.Fatalf("error = %q, want mention of %s", payload["error"], tc.field)
		}
	}

	vehicles, err := repo.ListActiveVehicles(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListActiveVehicles failed: %v", err)
	}
	if len(vehicles) != 0 {
		t.Fatalf("rejected vehicles were persisted: %d found", len(vehicles))
	}

	rec := postJSON(t, h.CreateVehicle, "/api/vehicles",
		`{"name": "Alpha", "type": "van", "rated_efficiency": 12, "monthly_loan_payment": 9000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid vehicle status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}
