package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fleetchat/internal/models"
)

const dateFormat = "2006-01-02"

// RecordStore is the read-only boundary to the persistent record store.
type RecordStore interface {
	ListDailyRecords(ctx context.Context, userID int64, from, to string) ([]models.Record, error)
	WindowTotals(ctx context.Context, userID int64, from, to string) (models.WindowTotals, error)
	ListActiveVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error)
}

type Aggregator struct {
	store RecordStore
}

func NewAggregator(store RecordStore) *Aggregator {
	return &Aggregator{store: store}
}

// Aggregate reduces the user's records in the given window into a UserContext.
// The comparison window (equal length, ending the day before the window starts)
// is fetched as a light totals read; the two window reads run concurrently.
// An empty window is not an error: it yields HasData=false with zeroed vehicle
// entries. Store failures propagate.
func (a *Aggregator) Aggregate(ctx context.Context, userID int64, period models.Period) (models.UserContext, error) {
	vehicles, err := a.store.ListActiveVehicles(ctx, userID)
	if err != nil {
		return models.UserContext{}, fmt.Errorf("fetching vehicles: %w", err)
	}

	prev := PreviousPeriod(period)

	var (
		records    []models.Record
		prevTotals models.WindowTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = a.store.ListDailyRecords(gctx, userID, period.Start.Format(dateFormat), period.End.Format(dateFormat))
		if err != nil {
			return fmt.Errorf("fetching records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prevTotals, err = a.store.WindowTotals(gctx, userID, prev.Start.Format(dateFormat), prev.End.Format(dateFormat))
		if err != nil {
			return fmt.Errorf("fetching comparison window: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.UserContext{}, err
	}

	if len(records) == 0 {
		return emptyContext(period, vehicles), nil
	}

	breakdown := buildBreakdown(records, vehicles, period.Days)
	perf := buildVehiclePerformance(records, vehicles, period.Days)

	summary := models.Summary{
		TotalExpenses: breakdown.Total(),
		TripCount:     len(records),
	}
	for _, rec := range records {
		summary.TotalEarnings += rec.Earnings
		summary.TotalDistance += rec.DistanceKm
	}
	summary.NetProfit = summary.TotalEarnings - summary.TotalExpenses

	top, worst := rankPerformers(perf)

	return models.UserContext{
		Period:           period,
		Summary:          summary,
		Expenses:         breakdown,
		Vehicles:         perf,
		Trends:           buildTrends(summary, prevTotals, vehicles, period.Days),
		TopPerformer:     top,
		WorstPerformer:   worst,
		DominantCategory: dominantCategory(breakdown),
		HasData:          true,
	}, nil
}

func emptyContext(period models.Period, vehicles []models.Vehicle) models.UserContext {
	perf := make([]models.VehiclePerformance, 0, len(vehicles))
	for _, v := range vehicles {
		perf = append(perf, models.VehiclePerformance{
			ID:              v.ID,
			Name:            v.Name,
			Type:            v.Type,
			RatedEfficiency: v.RatedEfficiency,
		})
	}
	return models.UserContext{
		Period:           period,
		Vehicles:         perf,
		TopPerformer:     "none",
		WorstPerformer:   "none",
		DominantCategory: "none",
		HasData:          false,
	}
}

// amortizedDaily allocates the fleet's monthly fixed costs across calendar
// days: (monthly value / 30) per day, per vehicle.
func amortizedDaily(vehicles []models.Vehicle) (loan, labor, maintenance float64) {
	for _, v := range vehicles {
		loan += v.MonthlyLoanPayment / 30
		labor += v.MonthlyLaborCost / 30
		maintenance += v.MonthlyMaintenance / 30
	}
	return loan, labor, maintenance
}

func buildBreakdown(records []models.Record, vehicles []models.Vehicle, days int) models.ExpenseBreakdown {
	var b models.ExpenseBreakdown
	for _, rec := range records {
		b.Fuel += rec.FuelCost
		b.Toll += rec.TollCost
		b.Repair += rec.RepairCost
		b.Food += rec.FoodCost
		b.Misc += rec.MiscCost
	}
	loan, labor, maintenance := amortizedDaily(vehicles)
	b.LoanPayment = loan * float64(days)
	b.Labor = labor * float64(days)
	b.Maintenance = maintenance * float64(days)
	return b
}

func buildVehiclePerformance(records []models.Record, vehicles []models.Vehicle, days int) []models.VehiclePerformance {
	perf := make([]models.VehiclePerformance, 0, len(vehicles))
	index := make(map[int64]int, len(vehicles))
	for _, v := range vehicles {
		amortized := (v.MonthlyLoanPayment + v.MonthlyLaborCost + v.MonthlyMaintenance) / 30 * float64(days)
		index[v.ID] = len(perf)
		perf = append(perf, models.VehiclePerformance{
			ID:              v.ID,
			Name:            v.Name,
			Type:            v.Type,
			TotalExpenses:   amortized,
			NetProfit:       -amortized,
			RatedEfficiency: v.RatedEfficiency,
		})
	}

	fuelConsumed := make(map[int64]float64, len(vehicles))
	for _, rec := range records {
		i, ok := index[rec.VehicleID]
		if !ok {
			// Record for a vehicle no longer active; still attribute it so
			// summary totals stay exact.
			index[rec.VehicleID] = len(perf)
			perf = append(perf, models.VehiclePerformance{
				ID:              rec.VehicleID,
				Name:            rec.VehicleName,
				Type:            rec.VehicleType,
				RatedEfficiency: rec.RatedEfficiency,
			})
			i = len(perf) - 1
		}
		p := &perf[i]
		p.TotalDistance += rec.DistanceKm
		p.TotalEarnings += rec.Earnings
		p.TotalExpenses += rec.TripExpenses()
		p.TripCount++
		fuelConsumed[rec.VehicleID] += rec.FuelConsumed
	}

	for i := range perf {
		p := &perf[i]
		p.NetProfit = p.TotalEarnings - p.TotalExpenses
		if p.TripCount > 0 {
			p.AvgProfitPerTrip = p.NetProfit / float64(p.TripCount)
		}
		if fuel := fuelConsumed[p.ID]; fuel > 0 {
			p.FuelEfficiency = p.TotalDistance / fuel
		} else {
			p.FuelEfficiency = p.RatedEfficiency
		}
	}
	return perf
}

// rankPerformers picks the best and worst vehicle by net profit among vehicles
// that had trips. Ties keep the earlier vehicle (stable input order); an
// all-zero field reports "none".
func rankPerformers(perf []models.VehiclePerformance) (top, worst string) {
	var best, least *models.VehiclePerformance
	allZero := true
	for i := range perf {
		p := &perf[i]
		if p.TripCount == 0 {
			continue
		}
		if p.NetProfit != 0 {
			allZero = false
		}
		if best == nil || p.NetProfit > best.NetProfit {
			best = p
		}
		if least == nil || p.NetProfit < least.NetProfit {
			least = p
		}
	}
	if best == nil || allZero {
		return "none", "none"
	}
	return best.Name, least.Name
}

func dominantCategory(b models.ExpenseBreakdown) string {
	name := "none"
	var max float64
	for _, c := range b.Categories() {
		if c.Amount > max {
			max = c.Amount
			name = c.Category
		}
	}
	return name
}

func buildTrends(current models.Summary, prev models.WindowTotals, vehicles []models.Vehicle, days int) models.TrendData {
	// The comparison window carries the same amortized allocation so expense
	// and profit deltas compare like with like.
	loan, labor, maintenance := amortizedDaily(vehicles)
	amortized := (loan + labor + maintenance) * float64(days)
	prevExpenses := prev.Expenses + amortized
	prevProfit := prev.Earnings - prevExpenses

	return models.TrendData{
		ProfitChange:   calcChange(current.NetProfit, prevProfit),
		ExpenseChange:  calcChange(current.TotalExpenses, prevExpenses),
		EarningsChange: calcChange(current.TotalEarnings, prev.Earnings),
		DistanceChange: calcChange(current.TotalDistance, prev.DistanceKm),
	}
}

// calcChange returns the percentage delta between windows. A zero baseline
// maps to 100 when the current value grew from nothing, else 0.
func calcChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
