package billing

import (
	"context"

	"clubhouse/app/models"
)

// PaymentStore is the engine's view of the document store for payment
// records. All writes are per-document; the store offers no multi-document
// atomicity, which is why the engine relies on status preconditions instead
// of transactions.
type PaymentStore interface {
	Create(ctx context.Context, rec *models.PaymentRecord) error
	Update(ctx context.Context, rec *models.PaymentRecord) error
	GetByID(ctx context.Context, id string) (*models.PaymentRecord, error)

	// ListOpen returns every non-archived record across all students.
	ListOpen(ctx context.Context) ([]*models.PaymentRecord, error)
	// ListByStudent returns all records for one student, newest due first.
	ListByStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error)
	// PendingByStudent returns the student's pending records.
	PendingByStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error)
	// OpenByPeriod returns the student's non-archived record for a reference
	// month, or nil when none exists.
	OpenByPeriod(ctx context.Context, studentID string, period models.Period) (*models.PaymentRecord, error)
}

// StudentStore is the engine's read-only view of student records.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
	ListActive(ctx context.Context) ([]*models.Student, error)
}

// Invalidator clears cached payment listings after the engine writes.
type Invalidator interface {
	InvalidatePayments()
}
