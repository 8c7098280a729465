package models

// SubscriptionPlan defines how often a student is billed.
type SubscriptionPlan string

const (
	PlanMonthly    SubscriptionPlan = "monthly"
	PlanQuarterly  SubscriptionPlan = "quarterly"
	PlanSemiannual SubscriptionPlan = "semiannual"
)

// StudentStatus defines the lifecycle status of a club student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentSuspended StudentStatus = "suspended"
)

// PaymentStatus defines the stored status of a payment record.
// "Late" is never stored; it is derived from status, due date and today.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentArchived PaymentStatus = "archived"
)
