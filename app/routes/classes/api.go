package classes

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clubhouse/app/cache"
	"clubhouse/app/database"
	"clubhouse/app/models"
)

var validate = validator.New()

type classRequest struct {
	Name      string  `json:"name" validate:"required"`
	Code      string  `json:"code" validate:"required"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
	Capacity  int     `json:"capacity" validate:"gte=0"`
	IsActive  *bool   `json:"is_active"`
}

func (r *classRequest) toModel() *models.Class {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Class{
		Name:      r.Name,
		Code:      r.Code,
		TeacherID: r.TeacherID,
		Capacity:  r.Capacity,
		IsActive:  active,
	}
}

// GetClassesAPI lists all classes (with student counts) through the cache.
func GetClassesAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	classes, err := cache.GetOrFetch(c.Context(), snapshots, cache.Classes,
		func(ctx context.Context) ([]*models.Class, error) {
			return database.GetAllClasses(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	return c.JSON(fiber.Map{
		"classes": classes,
		"count":   len(classes),
	})
}

func GetClassByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch class"})
	}
	if class == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
	}
	return c.JSON(fiber.Map{"class": class})
}

func CreateClassAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	class := req.toModel()
	if err := database.CreateClass(db, class); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create class",
		})
	}

	snapshots.Invalidate(cache.Classes)
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"class":   class,
	})
}

func UpdateClassAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	existing, err := database.GetClassByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch class"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Class not found"})
	}

	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	class := req.toModel()
	class.ID = existing.ID
	if err := database.UpdateClass(db, class); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update class",
		})
	}

	snapshots.Invalidate(cache.Classes)
	return c.JSON(fiber.Map{
		"success": true,
		"class":   class,
	})
}

func DeleteClassAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch class"})
	}
	if class == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Class not found"})
	}

	if err := database.DeleteClass(db, class.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete class",
		})
	}

	snapshots.Invalidate(cache.Classes)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Class deleted successfully",
	})
}
