package models

// Vehicle represents one registered vehicle with the static monthly figures
// used for per-day cost amortization.
type Vehicle struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"user_id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"` // "car" | "van" | "truck" | "bike"
	RatedEfficiency    float64 `json:"rated_efficiency"` // km per liter, manufacturer figure
	MonthlyLoanPayment float64 `json:"monthly_loan_payment"`
	MonthlyLaborCost   float64 `json:"monthly_labor_cost"`
	MonthlyMaintenance float64 `json:"monthly_maintenance"`
	Active             bool    `json:"active"`
}

// Record is one day's logged trip entry for a vehicle, joined with the owning
// vehicle's static attributes so aggregation never needs a second lookup.
type Record struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	VehicleID    int64   `json:"vehicle_id"`
	RecordDate   string  `json:"record_date"` // YYYY-MM-DD
	Earnings     float64 `json:"earnings"`
	DistanceKm   float64 `json:"distance_km"`
	FuelConsumed float64 `json:"fuel_consumed_l"`
	FuelCost     float64 `json:"fuel_cost"`
	TollCost     float64 `json:"toll_cost"`
	RepairCost   float64 `json:"repair_cost"`
	FoodCost     float64 `json:"food_cost"`
	MiscCost     float64 `json:"misc_cost"`
	CreatedAt    string  `json:"created_at"`

	// Joined vehicle attributes.
	VehicleName        string  `json:"vehicle_name"`
	VehicleType        string  `json:"vehicle_type"`
	RatedEfficiency    float64 `json:"rated_efficiency"`
	MonthlyLoanPayment float64 `json:"monthly_loan_payment"`
	MonthlyLaborCost   float64 `json:"monthly_labor_cost"`
	MonthlyMaintenance float64 `json:"monthly_maintenance"`
}

// TripExpenses returns the direct (non-amortized) expense total of the record.
func (r Record) TripExpenses() float64 {
	return r.FuelCost + r.TollCost + r.RepairCost + r.FoodCost + r.MiscCost
}

// WindowTotals is the light read used for the comparison window: only the
// figures trend deltas are computed from.
type WindowTotals struct {
	Earnings   float64 `json:"earnings"`
	Expenses   float64 `json:"expenses"`
	DistanceKm float64 `json:"distance_km"`
	TripCount  int     `json:"trip_count"`
}
