package models

import "time"

// Period is a concrete inclusive date window plus its display label.
// Immutable once resolved for a turn.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
	Days  int       `json:"days"`
}

// Expense category names, in the fixed reporting order. Ties on the dominant
// category are broken by this order.
const (
	CategoryFuel        = "fuel"
	CategoryToll        = "toll"
	CategoryRepair      = "repair"
	CategoryFood        = "food"
	CategoryMisc        = "misc"
	CategoryLoanPayment = "loan payment"
	CategoryLabor       = "labor"
	CategoryMaintenance = "maintenance"
)

// ExpenseBreakdown holds the window total for each of the eight fixed expense
// categories. The last three are monthly figures amortized per calendar day.
type ExpenseBreakdown struct {
	Fuel        float64 `json:"fuel"`
	Toll        float64 `json:"toll"`
	Repair      float64 `json:"repair"`
	Food        float64 `json:"food"`
	Misc        float64 `json:"misc"`
	LoanPayment float64 `json:"loan_payment"`
	Labor       float64 `json:"labor"`
	Maintenance float64 `json:"maintenance"`
}

// CategoryAmount pairs a category name with its window total.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Categories returns the breakdown as ordered name/amount pairs.
func (b ExpenseBreakdown) Categories() []CategoryAmount {
	return []CategoryAmount{
		{CategoryFuel, b.Fuel},
		{CategoryToll, b.Toll},
		{CategoryRepair, b.Repair},
		{CategoryFood, b.Food},
		{CategoryMisc, b.Misc},
		{CategoryLoanPayment, b.LoanPayment},
		{CategoryLabor, b.Labor},
		{CategoryMaintenance, b.Maintenance},
	}
}

// Total returns the sum over all eight categories.
func (b ExpenseBreakdown) Total() float64 {
	var total float64
	for _, c := range b.Categories() {
		total += c.Amount
	}
	return total
}

// Summary holds the window-level totals.
type Summary struct {
	TotalEarnings float64 `json:"total_earnings"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	TotalDistance float64 `json:"total_distance"`
	TripCount     int     `json:"trip_count"`
}

// VehiclePerformance is the per-vehicle aggregate for one window. Recomputed
// fresh on every aggregation; never persisted.
type VehiclePerformance struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	TotalDistance    float64 `json:"total_distance"`
	TotalEarnings    float64 `json:"total_earnings"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetProfit        float64 `json:"net_profit"`
	TripCount        int     `json:"trip_count"`
	AvgProfitPerTrip float64 `json:"avg_profit_per_trip"`
	FuelEfficiency   float64 `json:"fuel_efficiency"`
	RatedEfficiency  float64 `json:"rated_efficiency"`
}

// TrendData holds percentage deltas against the preceding window of equal
// length: (current-previous)/previous*100, with previous=0 mapping to 100
// when current grew from nothing and 0 otherwise.
type TrendData struct {
	ProfitChange   float64 `json:"profit_change"`
	ExpenseChange  float64 `json:"expense_change"`
	EarningsChange float64 `json:"earnings_change"`
	DistanceChange float64 `json:"distance_change"`
}

// UserContext is the full aggregation result handed to the prompt composer.
// HasData distinguishes "no records in window" from a populated result.
type UserContext struct {
	Period           Period               `json:"period"`
	Summary          Summary              `json:"summary"`
	Expenses         ExpenseBreakdown     `json:"expenses"`
	Vehicles         []VehiclePerformance `json:"vehicles"`
	Trends           TrendData            `json:"trends"`
	TopPerformer     string               `json:"top_performer"`
	WorstPerformer   string               `json:"worst_performer"`
	DominantCategory string               `json:"dominant_category"`
	HasData          bool                 `json:"has_data"`
}
