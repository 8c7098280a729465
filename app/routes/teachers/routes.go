package teachers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clubhouse/app/cache"
)

func SetupTeachersRoutes(app *fiber.App, snapshots *cache.Service, db *sql.DB) {
	api := app.Group("/api/teachers")

	api.Get("/", func(c *fiber.Ctx) error { return GetTeachersAPI(c, snapshots, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetTeacherByIDAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateTeacherAPI(c, snapshots, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateTeacherAPI(c, snapshots, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteTeacherAPI(c, snapshots, db) })
}
