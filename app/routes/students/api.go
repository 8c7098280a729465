package students

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"clubhouse/app/cache"
	"clubhouse/app/database"
	"clubhouse/app/models"
)

var validate = validator.New()

type studentRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Plan       string  `json:"plan" validate:"required,oneof=monthly quarterly semiannual"`
	MonthlyFee string  `json:"monthly_fee" validate:"required"`
	EnrolledOn string  `json:"enrolled_on" validate:"required"`
	Status     string  `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	ClassID    *string `json:"class_id" validate:"omitempty,uuid"`
}

func (r *studentRequest) toModel() (*models.Student, string) {
	fee, err := decimal.NewFromString(r.MonthlyFee)
	if err != nil || fee.IsNegative() {
		return nil, "monthly_fee must be a non-negative decimal"
	}
	enrolled, err := time.Parse("2006-01-02", r.EnrolledOn)
	if err != nil {
		return nil, "enrolled_on must be a YYYY-MM-DD date"
	}
	status := models.StudentStatus(r.Status)
	if r.Status == "" {
		status = models.StudentActive
	}
	return &models.Student{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Plan:       models.SubscriptionPlan(r.Plan),
		MonthlyFee: fee,
		EnrolledOn: enrolled,
		Status:     status,
		ClassID:    r.ClassID,
	}, ""
}

// GetStudentsAPI lists all students through the read-through cache.
func GetStudentsAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	students, err := cache.GetOrFetch(c.Context(), snapshots, cache.Students,
		func(ctx context.Context) ([]*models.Student, error) {
			return database.GetAllStudents(db)
		})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.JSON(fiber.Map{"student": student})
}

func CreateStudentAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	var req studentRequest
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

	student, problem := req.toModel()
	if problem != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": problem})
	}

	if err := database.CreateStudent(db, student); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create student",
		})
	}

	snapshots.Invalidate(cache.Students)
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

func UpdateStudentAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	existing, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch student"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
	}

	var req studentRequest
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

	student, problem := req.toModel()
	if problem != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": problem})
	}
	student.ID = existing.ID

	if err := database.UpdateStudent(db, student); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update student",
		})
	}

	snapshots.Invalidate(cache.Students)
	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

// DeleteStudentAPI soft-deletes a student. Deletion is refused while payment
// history references the student, so billing records are never orphaned.
func DeleteStudentAPI(c *fiber.Ctx, snapshots *cache.Service, db *sql.DB) error {
	studentID := c.Params("id")

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
	}

	count, err := database.CountPaymentsForStudent(db, studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to check payment history"})
	}
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Student has payment history and cannot be deleted",
		})
	}

	if err := database.DeleteStudent(db, studentID); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete student",
		})
	}

	snapshots.Invalidate(cache.Students)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}
