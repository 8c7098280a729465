package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jonboulle/clockwork"

	"clubhouse/app/billing"
	"clubhouse/app/cache"
	"clubhouse/app/config"
	"clubhouse/app/database"
	"clubhouse/app/routes/classes"
	"clubhouse/app/routes/dashboard"
	"clubhouse/app/routes/payments"
	"clubhouse/app/routes/students"
	"clubhouse/app/routes/teachers"
)

// errorHandler turns unhandled errors into JSON responses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.Load()
	db := config.GetDB()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migrations failed:", err)
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.TTL = config.AppConfig.CacheTTL
	snapshots := cache.New(cacheCfg)

	engine := billing.New(
		database.NewPaymentRepo(db),
		database.NewStudentReader(db),
		snapshots,
		clockwork.NewRealClock(),
	)

	app := fiber.New(fiber.Config{
		AppName:      "Clubhouse",
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	students.SetupStudentsRoutes(app, snapshots, db)
	teachers.SetupTeachersRoutes(app, snapshots, db)
	classes.SetupClassesRoutes(app, snapshots, db)
	payments.SetupPaymentsRoutes(app, engine, snapshots, db)
	dashboard.SetupDashboardRoutes(app, snapshots, db)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
