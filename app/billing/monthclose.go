package billing

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"clubhouse/app/models"
)

// MonthCloseResult summarizes one run of the month-close batch. TargetMonth
// is nil when there was nothing to close.
type MonthCloseResult struct {
	TargetMonth          *models.Period `json:"target_month"`
	StudentsProcessed    int            `json:"students_processed"`
	PaymentsArchived     int            `json:"payments_archived"`
	NewPaymentsGenerated int            `json:"new_payments_generated"`
	FailedStudentIDs     []string       `json:"failed_student_ids"`
}

// CloseNextAvailableMonth archives the earliest open reference month and
// seeds the next billing cycle for active students left without a pending
// record. Students are processed independently: one student's store failure
// is recorded and the batch moves on. The payments cache is invalidated once,
// after the batch, so readers never observe a half-archived month.
//
// Re-running the batch on an already-closed month is a no-op: archived
// records are out of scope of the scan, and generation is guarded by the
// open-record-per-period check.
func (e *Engine) CloseNextAvailableMonth(ctx context.Context) (*MonthCloseResult, error) {
	result := &MonthCloseResult{FailedStudentIDs: []string{}}

	open, err := e.payments.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return result, nil
	}

	target := open[0].ReferenceMonth
	for _, rec := range open[1:] {
		if rec.ReferenceMonth.Before(target) {
			target = rec.ReferenceMonth
		}
	}
	result.TargetMonth = &target

	byStudent := make(map[string][]*models.PaymentRecord)
	for _, rec := range open {
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}

	active, err := e.students.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	activeByID := make(map[string]*models.Student, len(active))
	for _, s := range active {
		activeByID[s.ID] = s
	}

	now := e.clock.Now()
	for studentID, records := range byStudent {
		inTarget := false
		for _, rec := range records {
			if rec.ReferenceMonth == target {
				inTarget = true
				break
			}
		}
		if !inTarget {
			continue
		}

		result.StudentsProcessed++
		archived, generated, err := e.closeStudentMonth(ctx, activeByID[studentID], studentID, records, target, now)
		result.PaymentsArchived += archived
		result.NewPaymentsGenerated += generated
		if err != nil {
			log.Printf("Month close failed for student %s: %v", studentID, err)
			result.FailedStudentIDs = append(result.FailedStudentIDs, studentID)
		}
	}
	sort.Strings(result.FailedStudentIDs)

	e.cache.InvalidatePayments()
	return result, nil
}

// closeStudentMonth archives one student's records for the target month and,
// when the student is active and has no pending record left, seeds the next
// cycle anchored at the latest archived due date.
func (e *Engine) closeStudentMonth(ctx context.Context, student *models.Student, studentID string, records []*models.PaymentRecord, target models.Period, now time.Time) (archived, generated int, err error) {
	var anchor time.Time
	for _, rec := range records {
		if rec.ReferenceMonth != target {
			continue
		}
		if rec.Status != models.PaymentPending && rec.Status != models.PaymentPaid {
			continue
		}
		rec.Status = models.PaymentArchived
		archivedAt := now
		rec.ArchivedAt = &archivedAt
		rec.UpdatedAt = now
		if err := e.payments.Update(ctx, rec); err != nil {
			return archived, generated, fmt.Errorf("archive record %s: %w", rec.ID, err)
		}
		archived++
		if rec.DueDate.After(anchor) {
			anchor = rec.DueDate
		}
	}
	if archived == 0 {
		return archived, generated, nil
	}

	// Inactive and suspended students get their month archived but no new
	// cycle; billing resumes through activation or a later payment.
	if student == nil {
		return archived, generated, nil
	}

	for _, rec := range records {
		if rec.ReferenceMonth != target && rec.Status == models.PaymentPending {
			return archived, generated, nil
		}
	}

	e.warnUnrecognizedPlan(student)
	due := NextDueDate(anchor, student.Plan)
	period := models.PeriodOf(due)

	existing, err := e.payments.OpenByPeriod(ctx, studentID, period)
	if err != nil {
		return archived, generated, fmt.Errorf("check period %s: %w", period, err)
	}
	if existing != nil {
		return archived, generated, nil
	}

	next := &models.PaymentRecord{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		ReferenceMonth: period,
		Amount:         student.MonthlyFee,
		DueDate:        due,
		Status:         models.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.payments.Create(ctx, next); err != nil {
		return archived, generated, fmt.Errorf("generate next cycle: %w", err)
	}
	generated++
	return archived, generated, nil
}
