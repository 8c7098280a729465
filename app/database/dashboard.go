package database

import (
	"database/sql"
	"time"

	"clubhouse/app/models"
)

// GetBillingStats returns the payment figures for the admin dashboard: open
// and late record counts and the total pending amount. Lateness is computed
// against the supplied time, never stored.
func GetBillingStats(db *sql.DB, now time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM payment_records WHERE status <> 'archived'`).
		Scan(&stats.OpenPayments)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	err = db.QueryRow(`SELECT COUNT(*) FROM payment_records WHERE status = 'pending' AND due_date < $1`, today).
		Scan(&stats.LatePayments)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payment_records WHERE status = 'pending'`).
		Scan(&stats.Outstanding)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
