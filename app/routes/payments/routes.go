package payments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clubhouse/app/billing"
	"clubhouse/app/cache"
)

// SetupPaymentsRoutes registers the billing engine's HTTP boundary.
func SetupPaymentsRoutes(app *fiber.App, engine *billing.Engine, snapshots *cache.Service, db *sql.DB) {
	api := app.Group("/api")

	api.Get("/payments", func(c *fiber.Ctx) error {
		return ListPaymentsAPI(c, snapshots, db)
	})
	api.Post("/payments/close-month", func(c *fiber.Ctx) error {
		return CloseMonthAPI(c, engine)
	})
	api.Post("/payments/:id/pay", func(c *fiber.Ctx) error {
		return MarkPaidAPI(c, engine)
	})

	api.Post("/students/:id/billing", func(c *fiber.Ctx) error {
		return ActivateBillingAPI(c, engine)
	})
	api.Get("/students/:id/payments", func(c *fiber.Ctx) error {
		return GetStudentPaymentsAPI(c, engine)
	})
}
