package database

import (
	"context"
	"database/sql"

	"fleetchat/internal/models"
)

type Repository struct {
	db           *sql.DB
	defaultQuota int
}

// NewRepository wraps db. defaultQuota is the messages_remaining balance new
// users start with.
func NewRepository(db *sql.DB, defaultQuota int) *Repository {
	return &Repository{db: db, defaultQuota: defaultQuota}
}

func (r *Repository) EnsureDefaultUser() (int64, error) {
	_, err := r.db.Exec(`INSERT OR IGNORE INTO users (name, messages_remaining) VALUES ('default', ?)`, r.defaultQuota)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(`SELECT id FROM users WHERE name = 'default'`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) GetUser(id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(
		`SELECT id, name, plan, messages_remaining, ai_enabled FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Plan, &u.MessagesRemaining, &u.AIEnabled)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) CreateUser(name string) (*models.User, error) {
	result, err := r.db.Exec(`INSERT INTO users (name, messages_remaining) VALUES (?, ?)`, name, r.defaultQuota)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetUser(id)
}

func (r *Repository) ListUsers() ([]models.User, error) {
	rows, err := r.db.Query(`SELECT id, name, plan, messages_remaining, ai_enabled FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Plan, &u.MessagesRemaining, &u.AIEnabled); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) CreateVehicle(userID int64, v models.Vehicle) (*models.Vehicle, error) {
	result, err := r.db.Exec(`
		INSERT INTO vehicles (user_id, name, type, rated_efficiency, monthly_loan_payment, monthly_labor_cost, monthly_maintenance, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		userID, v.Name, v.Type, v.RatedEfficiency, v.MonthlyLoanPayment, v.MonthlyLaborCost, v.MonthlyMaintenance,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	v.ID = id
	v.UserID = userID
	v.Active = true
	return &v, nil
}

// ListActiveVehicles returns the user's active vehicles in insertion order.
func (r *Repository) ListActiveVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, rated_efficiency, monthly_loan_payment, monthly_labor_cost, monthly_maintenance, active
		FROM vehicles
		WHERE user_id = ? AND active = 1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &v.Type, &v.RatedEfficiency,
			&v.MonthlyLoanPayment, &v.MonthlyLaborCost, &v.MonthlyMaintenance, &v.Active); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *Repository) CreateRecord(userID int64, rec models.Record) (*models.Record, error) {
	result, err := r.db.Exec(`
		INSERT INTO trip_records (
			user_id, vehicle_id, record_date, earnings, distance_km, fuel_consumed_l,
			fuel_cost, toll_cost, repair_cost, food_cost, misc_cost
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, rec.VehicleID, rec.RecordDate, rec.Earnings, rec.DistanceKm, rec.FuelConsumed,
		rec.FuelCost, rec.TollCost, rec.RepairCost, rec.FoodCost, rec.MiscCost,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	rec.ID = id
	rec.UserID = userID
	return &rec, nil
}

// ListDailyRecords returns the user's trip records in the inclusive date range,
// each joined with the owning vehicle's static attributes.
func (r *Repository) ListDailyRecords(ctx context.Context, userID int64, from, to string) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.vehicle_id, t.record_date, t.earnings, t.distance_km,
		       t.fuel_consumed_l, t.fuel_cost, t.toll_cost, t.repair_cost, t.food_cost,
		       t.misc_cost, t.created_at,
		       v.name, v.type, v.rated_efficiency, v.monthly_loan_payment,
		       v.monthly_labor_cost, v.monthly_maintenance
		FROM trip_records t
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE t.user_id = ?
		  AND t.record_date >= ?
		  AND t.record_date <= ?
		ORDER BY t.record_date ASC, t.id ASC
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.VehicleID, &rec.RecordDate, &rec.Earnings, &rec.DistanceKm,
			&rec.FuelConsumed, &rec.FuelCost, &rec.TollCost, &rec.RepairCost, &rec.FoodCost,
			&rec.MiscCost, &rec.CreatedAt,
			&rec.VehicleName, &rec.VehicleType, &rec.RatedEfficiency, &rec.MonthlyLoanPayment,
			&rec.MonthlyLaborCost, &rec.MonthlyMaintenance,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// WindowTotals returns only the figures trend deltas need for a date range.
// Lighter than ListDailyRecords: no per-record detail, no vehicle join.
func (r *Repository) WindowTotals(ctx context.Context, userID int64, from, to string) (models.WindowTotals, error) {
	var totals models.WindowTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(earnings), 0),
			COALESCE(SUM(fuel_cost + toll_cost + repair_cost + food_cost + misc_cost), 0),
			COALESCE(SUM(distance_km), 0),
			COUNT(*)
		FROM trip_records
		WHERE user_id = ?
		  AND record_date >= ?
		  AND record_date <= ?
	`, userID, from, to).Scan(&totals.Earnings, &totals.Expenses, &totals.DistanceKm, &totals.TripCount)
	if err != nil {
		return models.WindowTotals{}, err
	}
	return totals, nil
}

// ListRecentRecords returns the newest records first, joined with vehicle names.
func (r *Repository) ListRecentRecords(userID int64, limit int) ([]models.Record, error) {
	rows, err := r.db.Query(`
		SELECT t.id, t.user_id, t.vehicle_id, t.record_date, t.earnings, t.distance_km,
		       t.fuel_consumed_l, t.fuel_cost, t.toll_cost, t.repair_cost, t.food_cost,
		       t.misc_cost, t.created_at,
		       v.name, v.type, v.rated_efficiency, v.monthly_loan_payment,
		       v.monthly_labor_cost, v.monthly_maintenance
		FROM trip_records t
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE t.user_id = ?
		ORDER BY t.record_date DESC, t.id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.VehicleID, &rec.RecordDate, &rec.Earnings, &rec.DistanceKm,
			&rec.FuelConsumed, &rec.FuelCost, &rec.TollCost, &rec.RepairCost, &rec.FoodCost,
			&rec.MiscCost, &rec.CreatedAt,
			&rec.VehicleName, &rec.VehicleType, &rec.RatedEfficiency, &rec.MonthlyLoanPayment,
			&rec.MonthlyLaborCost, &rec.MonthlyMaintenance,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
