package billing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"clubhouse/app/models"
)

// Engine orchestrates the payment lifecycle: first billing on activation,
// payment confirmation with next-cycle generation, and the month-close batch.
// It always reads authoritative data from the store, never the cache; it only
// tells the cache when payment listings have gone stale.
type Engine struct {
	payments PaymentStore
	students StudentStore
	cache    Invalidator
	clock    clockwork.Clock
}

func New(payments PaymentStore, students StudentStore, cache Invalidator, clock clockwork.Clock) *Engine {
	return &Engine{
		payments: payments,
		students: students,
		cache:    cache,
		clock:    clock,
	}
}

// ActivateBilling creates the first pending payment record for an active
// student. Returns ErrAlreadyBilled when an open record already exists for
// the computed first reference month, so a duplicate activation can never
// create a second record.
func (e *Engine) ActivateBilling(ctx context.Context, studentID string) (*models.PaymentRecord, error) {
	student, err := e.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	if student.Status != models.StudentActive {
		return nil, fmt.Errorf("%w: student %s is %s", ErrStudentNotActive, studentID, student.Status)
	}
	e.warnUnrecognizedPlan(student)

	due := FirstDueDate(student.EnrolledOn, student.Plan)
	period := models.PeriodOf(due)

	existing, err := e.payments.OpenByPeriod(ctx, studentID, period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: student %s, period %s", ErrAlreadyBilled, studentID, period)
	}

	now := e.clock.Now()
	rec := &models.PaymentRecord{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		ReferenceMonth: period,
		Amount:         student.MonthlyFee,
		DueDate:        due,
		Status:         models.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.payments.Create(ctx, rec); err != nil {
		return nil, err
	}

	e.cache.InvalidatePayments()
	return rec, nil
}

// MarkAsPaid confirms a pending payment, then seeds the next billing cycle
// unless the student already has a pending record. The status precondition is
// the race guard: a concurrent second confirmation finds the record paid,
// fails with ErrInvalidTransition and generates nothing.
func (e *Engine) MarkAsPaid(ctx context.Context, recordID string, paidOn time.Time) (*models.PaymentRecord, error) {
	rec, err := e.payments.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	if rec.Status != models.PaymentPending {
		return nil, fmt.Errorf("%w: record %s is %s", ErrInvalidTransition, recordID, rec.Status)
	}

	rec.Status = models.PaymentPaid
	rec.PaymentDate = &paidOn
	rec.UpdatedAt = e.clock.Now()
	if err := e.payments.Update(ctx, rec); err != nil {
		return nil, err
	}

	// The confirmation stands even if seeding the successor fails; the next
	// month-close regenerates any missing pending record.
	if err := e.generateNextCycle(ctx, rec); err != nil {
		log.Printf("Failed to generate next cycle for student %s: %v", rec.StudentID, err)
	}

	e.cache.InvalidatePayments()
	return rec, nil
}

// generateNextCycle creates the successor of a settled record, guarded twice:
// no pending record may exist for the student, and no open record may exist
// for the successor's reference month.
func (e *Engine) generateNextCycle(ctx context.Context, prev *models.PaymentRecord) error {
	pending, err := e.payments.PendingByStudent(ctx, prev.StudentID)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return nil
	}

	student, err := e.students.GetByID(ctx, prev.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, prev.StudentID)
	}
	e.warnUnrecognizedPlan(student)

	due := NextDueDate(prev.DueDate, student.Plan)
	period := models.PeriodOf(due)

	existing, err := e.payments.OpenByPeriod(ctx, prev.StudentID, period)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := e.clock.Now()
	next := &models.PaymentRecord{
		ID:             uuid.NewString(),
		StudentID:      prev.StudentID,
		ReferenceMonth: period,
		Amount:         student.MonthlyFee,
		DueDate:        due,
		Status:         models.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return e.payments.Create(ctx, next)
}

// ListPaymentsForStudent returns the student's full payment history from the
// authoritative store, with the derived late flag stamped.
func (e *Engine) ListPaymentsForStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error) {
	student, err := e.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	records, err := e.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	for _, rec := range records {
		rec.StampLate(now)
	}
	return records, nil
}

func (e *Engine) warnUnrecognizedPlan(student *models.Student) {
	if _, ok := CadenceMonths(student.Plan); !ok {
		log.Printf("Unrecognized subscription plan %q for student %s, defaulting to monthly", student.Plan, student.ID)
	}
}
