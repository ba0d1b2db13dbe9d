package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fleetchat/internal/models"
)

// ListVehicles handles GET /api/vehicles.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)
	vehicles, err := h.repo.ListActiveVehicles(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load vehicles")
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle handles POST /api/vehicles.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if v.Name == "" {
		respondError(w, http.StatusBadRequest, "Vehicle name is required")
		return
	}
	if field, ok := firstNegative([]moneyField{
		{"rated_efficiency", v.RatedEfficiency},
		{"monthly_loan_payment", v.MonthlyLoanPayment},
		{"monthly_labor_cost", v.MonthlyLaborCost},
		{"monthly_maintenance", v.MonthlyMaintenance},
	}); ok {
		respondError(w, http.StatusBadRequest, field+" must not be negative")
		return
	}
	if v.Type == "" {
		v.Type = "car"
	}

	userID := h.currentUserID(w, r)
	created, err := h.repo.CreateVehicle(userID, v)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// moneyField pairs a JSON field name with its value for validation.
type moneyField struct {
	name  string
	value float64
}

// firstNegative returns the first field holding a negative value. Monetary
// and measurement fields must be non-negative at the entry boundary so the
// aggregated expense categories can never go negative downstream.
func firstNegative(fields []moneyField) (string, bool) {
	for _, f := range fields {
		if f.value < 0 {
			return f.name, true
		}
	}
	return "", false
}

// CreateRecord handles POST /api/records.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var rec models.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if rec.VehicleID == 0 {
		respondError(w, http.StatusBadRequest, "vehicle_id is required")
		return
	}
	if field, ok := firstNegative([]moneyField{
		{"earnings", rec.Earnings},
		{"distance_km", rec.DistanceKm},
		{"fuel_consumed_l", rec.FuelConsumed},
		{"fuel_cost", rec.FuelCost},
		{"toll_cost", rec.TollCost},
		{"repair_cost", rec.RepairCost},
		{"food_cost", rec.FoodCost},
		{"misc_cost", rec.MiscCost},
	}); ok {
		respondError(w, http.StatusBadRequest, field+" must not be negative")
		return
	}
	if rec.RecordDate == "" {
		rec.RecordDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", rec.RecordDate); err != nil {
		respondError(w, http.StatusBadRequest, "record_date must be YYYY-MM-DD")
		return
	}

	userID := h.currentUserID(w, r)
	created, err := h.repo.CreateRecord(userID, rec)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create record")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// RecentRecords handles GET /api/records/recent.
func (h *Handler) RecentRecords(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			if parsed > 500 {
				parsed = 500
			}
			limit = parsed
		}
	}

	userID := h.currentUserID(w, r)
	records, err := h.repo.ListRecentRecords(userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}
