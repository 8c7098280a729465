package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord represents one billing cycle for one student.
//
// The record references the student, it does not own it. For a given student
// at most one non-archived record exists per reference month; archived
// records are the append-only billing history and never change again.
type PaymentRecord struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID      string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ReferenceMonth Period          `json:"reference_month" gorm:"not null;type:char(7)"`
	Amount         decimal.Decimal `json:"amount" gorm:"not null;type:decimal(10,2)"`
	DueDate        time.Time       `json:"due_date" gorm:"not null;index;type:date"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty" gorm:"type:date"`
	Status         PaymentStatus   `json:"status" gorm:"not null;default:'pending';index;type:varchar(20)"`
	ArchivedAt     *time.Time      `json:"archived_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	// Late is derived at the read boundary and never persisted.
	Late bool `json:"late" gorm:"-"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// IsLate reports whether the record is pending and past its due date.
// Comparison is by calendar day, not instant.
func (r *PaymentRecord) IsLate(now time.Time) bool {
	if r.Status != PaymentPending {
		return false
	}
	due := time.Date(r.DueDate.Year(), r.DueDate.Month(), r.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// StampLate fills the derived Late flag from the current time.
func (r *PaymentRecord) StampLate(now time.Time) {
	r.Late = r.IsLate(now)
}
