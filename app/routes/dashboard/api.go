package dashboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"clubhouse/app/cache"
	"clubhouse/app/database"
	"clubhouse/app/models"
)

func SetupDashboardRoutes(app *fiber.App, snapshots *cache.Service, db *sql.DB) {
	app.Get("/api/dashboard", func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, snapshots, db)
	})
}

// GetDashboardStatsAPI returns the admin dashboard figures. Collection counts
// come from the cached snapshots; the billing figures are aggregated in the
// store since lateness depends on the current day.
func GetDashboardStatsAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	stats, err := database.GetBillingStats(db, time.Now())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch dashboard statistics",
		})
	}

	students, err := cache.GetOrFetch(c.Context(), snapshots, cache.Students,
		func(ctx context.Context) ([]*models.Student, error) {
			return database.GetAllStudents(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch students"})
	}
	stats.TotalStudents = len(students)

	teachers, err := cache.GetOrFetch(c.Context(), snapshots, cache.Teachers,
		func(ctx context.Context) ([]*models.Teacher, error) {
			return database.GetAllTeachers(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch teachers"})
	}
	stats.TotalTeachers = len(teachers)

	classes, err := cache.GetOrFetch(c.Context(), snapshots, cache.Classes,
		func(ctx context.Context) ([]*models.Class, error) {
			return database.GetAllClasses(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch classes"})
	}
	stats.TotalClasses = len(classes)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
