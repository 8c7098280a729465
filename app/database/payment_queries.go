package database

import (
	"context"
	"database/sql"
	"fmt"

	"clubhouse/app/billing"
	"clubhouse/app/models"
)

func wrapStoreErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", billing.ErrStoreUnavailable, op, err)
}

const paymentColumns = `id, student_id, reference_month, amount, due_date, payment_date, status, archived_at, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.PaymentRecord, error) {
	rec := &models.PaymentRecord{}
	err := row.Scan(
		&rec.ID, &rec.StudentID, &rec.ReferenceMonth, &rec.Amount, &rec.DueDate,
		&rec.PaymentDate, &rec.Status, &rec.ArchivedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// PaymentRepo adapts the payment_records table to the billing engine's
// PaymentStore. Every method is a single-document read or write; there are no
// transactions here on purpose, the engine's status guards carry the
// consistency burden.
type PaymentRepo struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{DB: db}
}

func (r *PaymentRepo) Create(ctx context.Context, rec *models.PaymentRecord) error {
	query := `INSERT INTO payment_records (id, student_id, reference_month, amount, due_date, payment_date, status, archived_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(ctx, query,
		rec.ID, rec.StudentID, rec.ReferenceMonth, rec.Amount, rec.DueDate,
		rec.PaymentDate, rec.Status, rec.ArchivedAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("create payment record", err)
	}
	return nil
}

func (r *PaymentRepo) Update(ctx context.Context, rec *models.PaymentRecord) error {
	query := `UPDATE payment_records
			  SET status = $1, payment_date = $2, archived_at = $3, updated_at = $4
			  WHERE id = $5`

	_, err := r.DB.ExecContext(ctx, query,
		rec.Status, rec.PaymentDate, rec.ArchivedAt, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return wrapStoreErr("update payment record", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE id = $1`

	rec, err := scanPayment(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("fetch payment record", err)
	}
	return rec, nil
}

func (r *PaymentRepo) ListOpen(ctx context.Context) ([]*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records
			  WHERE status <> 'archived'
			  ORDER BY due_date, student_id`

	return r.queryPayments(ctx, "list open payment records", query)
}

func (r *PaymentRepo) ListByStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records
			  WHERE student_id = $1
			  ORDER BY due_date DESC`

	return r.queryPayments(ctx, "list student payment records", query, studentID)
}

func (r *PaymentRepo) PendingByStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records
			  WHERE student_id = $1 AND status = 'pending'
			  ORDER BY due_date`

	return r.queryPayments(ctx, "list pending payment records", query, studentID)
}

func (r *PaymentRepo) OpenByPeriod(ctx context.Context, studentID string, period models.Period) (*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records
			  WHERE student_id = $1 AND reference_month = $2 AND status <> 'archived'`

	rec, err := scanPayment(r.DB.QueryRowContext(ctx, query, studentID, period))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("fetch payment record by period", err)
	}
	return rec, nil
}

func (r *PaymentRepo) queryPayments(ctx context.Context, op, query string, args ...interface{}) ([]*models.PaymentRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr(op, err)
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, wrapStoreErr(op, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(op, err)
	}
	return records, nil
}

// ListOpenPayments is the listing read behind GET /api/payments; it is served
// through the cache, unlike the engine's authoritative reads above.
func ListOpenPayments(db *sql.DB) ([]*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records
			  WHERE status <> 'archived'
			  ORDER BY due_date, student_id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %v", err)
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
