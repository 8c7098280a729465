package teachers

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

type teacherRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Specialty string `json:"specialty"`
	IsActive  *bool  `json:"is_active"`
}

func (r *teacherRequest) toModel() *models.Teacher {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Teacher{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Specialty: r.Specialty,
		IsActive:  active,
	}
}

// GetTeachersAPI lists all teachers through the read-through cache.
func GetTeachersAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	teachers, err := cache.GetOrFetch(c.Context(), snapshots, cache.Teachers,
		func(ctx context.Context) ([]*models.Teacher, error) {
			return database.GetAllTeachers(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}

	return c.JSON(fiber.Map{
		"teachers": teachers,
		"count":    len(teachers),
	})
}

func GetTeacherByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	teacher, err := database.GetTeacherByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(fiber.Map{"teacher": teacher})
}

func CreateTeacherAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	var req teacherRequest
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

	teacher := req.toModel()
	if err := database.CreateTeacher(db, teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create teacher",
		})
	}

	snapshots.Invalidate(cache.Teachers)
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"teacher": teacher,
	})
}

func UpdateTeacherAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	existing, err := database.GetTeacherByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch teacher"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Teacher not found"})
	}

	var req teacherRequest
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

	teacher := req.toModel()
	teacher.ID = existing.ID
	if err := database.UpdateTeacher(db, teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update teacher",
		})
	}

	snapshots.Invalidate(cache.Teachers)
	return c.JSON(fiber.Map{
		"success": true,
		"teacher": teacher,
	})
}

func DeleteTeacherAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	teacher, err := database.GetTeacherByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch teacher"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Teacher not found"})
	}

	if err := database.DeleteTeacher(db, teacher.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete teacher",
		})
	}

	snapshots.Invalidate(cache.Teachers)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Teacher deleted successfully",
	})
}
