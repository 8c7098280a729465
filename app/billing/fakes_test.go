package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"clubhouse/app/models"
)

// In-memory stand-ins for the document store. Writes only take effect when
// the call succeeds, mirroring a real store where a failed write leaves the
// document untouched.

type fakePaymentStore struct {
	records map[string]models.PaymentRecord

	// failStudents makes writes for these students fail.
	failStudents map[string]bool

	creates int
	updates int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		records:      make(map[string]models.PaymentRecord),
		failStudents: make(map[string]bool),
	}
}

func (f *fakePaymentStore) seed(rec models.PaymentRecord) {
	f.records[rec.ID] = rec
}

func (f *fakePaymentStore) Create(ctx context.Context, rec *models.PaymentRecord) error {
	if f.failStudents[rec.StudentID] {
		return fmt.Errorf("%w: create refused", ErrStoreUnavailable)
	}
	f.records[rec.ID] = *rec
	f.creates++
	return nil
}

func (f *fakePaymentStore) Update(ctx context.Context, rec *models.PaymentRecord) error {
	if f.failStudents[rec.StudentID] {
		return fmt.Errorf("%w: update refused", ErrStoreUnavailable)
	}
	if _, ok := f.records[rec.ID]; !ok {
		return fmt.Errorf("%w: record %s missing", ErrStoreUnavailable, rec.ID)
	}
	f.records[rec.ID] = *rec
	f.updates++
	return nil
}

func (f *fakePaymentStore) GetByID(ctx context.Context, id string) (*models.PaymentRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakePaymentStore) ListOpen(ctx context.Context) ([]*models.PaymentRecord, error) {
	var out []*models.PaymentRecord
	for _, rec := range f.records {
		if rec.Status != models.PaymentArchived {
			r := rec
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePaymentStore) ListByStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error) {
	var out []*models.PaymentRecord
	for _, rec := range f.records {
		if rec.StudentID == studentID {
			r := rec
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return out, nil
}

func (f *fakePaymentStore) PendingByStudent(ctx context.Context, studentID string) ([]*models.PaymentRecord, error) {
	var out []*models.PaymentRecord
	for _, rec := range f.records {
		if rec.StudentID == studentID && rec.Status == models.PaymentPending {
			r := rec
			out = append(out, &r)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) OpenByPeriod(ctx context.Context, studentID string, period models.Period) (*models.PaymentRecord, error) {
	for _, rec := range f.records {
		if rec.StudentID == studentID && rec.ReferenceMonth == period && rec.Status != models.PaymentArchived {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentStore) byStatus(status models.PaymentStatus) []models.PaymentRecord {
	var out []models.PaymentRecord
	for _, rec := range f.records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out
}

type fakeStudentStore struct {
	students map[string]models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[string]models.Student)}
}

func (f *fakeStudentStore) seed(s models.Student) {
	f.students[s.ID] = s
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStudentStore) ListActive(ctx context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.Status == models.StudentActive {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeInvalidator struct {
	invalidations int
}

func (f *fakeInvalidator) InvalidatePayments() {
	f.invalidations++
}

// testNow is the fake wall clock time used across the engine tests.
var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine() (*Engine, *fakePaymentStore, *fakeStudentStore, *fakeInvalidator) {
	payments := newFakePaymentStore()
	students := newFakeStudentStore()
	inv := &fakeInvalidator{}
	engine := New(payments, students, inv, clockwork.NewFakeClockAt(testNow))
	return engine, payments, students, inv
}
