package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clubhouse/app/cache"
)

func SetupClassesRoutes(app *fiber.App, snapshots *cache.Service, db *sql.DB) {
	api := app.Group("/api/classes")

	api.Get("/", func(c *fiber.Ctx) error { return GetClassesAPI(c, snapshots, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetClassByIDAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateClassAPI(c, snapshots, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateClassAPI(c, snapshots, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteClassAPI(c, snapshots, db) })
}
