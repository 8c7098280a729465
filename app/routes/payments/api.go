package payments

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"clubhouse/app/billing"
	"clubhouse/app/cache"
	"clubhouse/app/database"
	"clubhouse/app/models"
)

type markPaidRequest struct {
	PaidOn string `json:"paid_on"` // YYYY-MM-DD, defaults to today
}

// ActivateBillingAPI creates the first billing cycle for a student.
func ActivateBillingAPI(c *fiber.Ctx, engine *billing.Engine) error {
	rec, err := engine.ActivateBilling(c.Context(), c.Params("id"))
	if err != nil {
		return billingError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"payment": rec,
	})
}

// MarkPaidAPI confirms a pending payment and reports the updated record.
func MarkPaidAPI(c *fiber.Ctx, engine *billing.Engine) error {
	var req markPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid request body",
			})
		}
	}

	paidOn := time.Now().UTC().Truncate(24 * time.Hour)
	if req.PaidOn != "" {
		parsed, err := time.Parse("2006-01-02", req.PaidOn)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid paid_on date, expected YYYY-MM-DD",
			})
		}
		paidOn = parsed
	}

	rec, err := engine.MarkAsPaid(c.Context(), c.Params("id"), paidOn)
	if err != nil {
		return billingError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"payment": rec,
	})
}

// CloseMonthAPI runs the month-close batch and reports its summary, failed
// students included.
func CloseMonthAPI(c *fiber.Ctx, engine *billing.Engine) error {
	result, err := engine.CloseNextAvailableMonth(c.Context())
	if err != nil {
		return billingError(c, err)
	}

	if result.TargetMonth == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "No open payments to close",
			"result":  result,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// GetStudentPaymentsAPI returns a student's payment history straight from the
// store; single-student reads bypass the cache.
func GetStudentPaymentsAPI(c *fiber.Ctx, engine *billing.Engine) error {
	records, err := engine.ListPaymentsForStudent(c.Context(), c.Params("id"))
	if err != nil {
		return billingError(c, err)
	}

	return c.JSON(fiber.Map{
		"payments": records,
		"count":    len(records),
	})
}

// ListPaymentsAPI returns all open payments through the read-through cache.
// Late flags are stamped after the cached read so they track the wall clock.
func ListPaymentsAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	records, err := cache.GetOrFetch(c.Context(), snapshots, cache.Payments,
		func(ctx context.Context) ([]*models.PaymentRecord, error) {
			return database.ListOpenPayments(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	now := time.Now()
	lateOnly := c.QueryBool("late", false)
	out := make([]*models.PaymentRecord, 0, len(records))
	for _, rec := range records {
		view := *rec
		view.StampLate(now)
		if lateOnly && !view.Late {
			continue
		}
		out = append(out, &view)
	}

	return c.JSON(fiber.Map{
		"payments": out,
		"count":    len(out),
	})
}

// billingError maps the engine's error taxonomy onto HTTP statuses with the
// actionable messages the operator UI shows.
func billingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, billing.ErrInvalidTransition):
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "This payment was already confirmed",
		})
	case errors.Is(err, billing.ErrAlreadyBilled):
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Billing is already active for this period",
		})
	case errors.Is(err, billing.ErrStudentNotActive):
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Student is not active",
		})
	case errors.Is(err, billing.ErrStudentNotFound), errors.Is(err, billing.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, billing.ErrStoreUnavailable):
		return c.Status(503).JSON(fiber.Map{
			"success": false,
			"error":   "Store unavailable, please retry",
		})
	default:
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}
