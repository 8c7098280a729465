package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student represents a club member enrolled on a subscription plan.
type Student struct {
	ID         string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FirstName  string           `json:"first_name" gorm:"not null" validate:"required"`
	LastName   string           `json:"last_name" gorm:"not null" validate:"required"`
	Plan       SubscriptionPlan `json:"plan" gorm:"not null;default:'monthly';type:varchar(20)" validate:"required"`
	MonthlyFee decimal.Decimal  `json:"monthly_fee" gorm:"not null;type:decimal(10,2)"`
	EnrolledOn time.Time        `json:"enrolled_on" gorm:"not null;type:date" validate:"required"`
	Status     StudentStatus    `json:"status" gorm:"not null;default:'active';index;type:varchar(20)"`
	ClassID    *string          `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	CreatedAt  time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time       `json:"deleted_at,omitempty" gorm:"index"`

	Class *Class `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
