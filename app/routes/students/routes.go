package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clubhouse/app/cache"
)

func SetupStudentsRoutes(app *fiber.App, snapshots *cache.Service, db *sql.DB) {
	api := app.Group("/api/students")

	api.Get("/", func(c *fiber.Ctx) error { return GetStudentsAPI(c, snapshots, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetStudentByIDAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateStudentAPI(c, snapshots, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateStudentAPI(c, snapshots, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteStudentAPI(c, snapshots, db) })
}
