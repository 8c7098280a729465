package models

import "github.com/shopspring/decimal"

// DashboardStats holds the aggregate figures shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents int `json:"total_students"`
	TotalTeachers int `json:"total_teachers"`
	TotalClasses  int `json:"total_classes"`

	OpenPayments int             `json:"open_payments"`
	LatePayments int             `json:"late_payments"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}
