package database

import (
	"context"
	"database/sql"
	"fmt"

	"clubhouse/app/models"
)

const studentColumns = `id, first_name, last_name, plan, monthly_fee, enrolled_on, status, class_id, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Plan, &s.MonthlyFee,
		&s.EnrolledOn, &s.Status, &s.ClassID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetAllStudents returns all non-deleted students, newest first.
func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %v", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_at IS NULL`

	s, err := scanStudent(db.QueryRow(query, studentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (first_name, last_name, plan, monthly_fee, enrolled_on, status, class_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		s.FirstName, s.LastName, s.Plan, s.MonthlyFee, s.EnrolledOn, s.Status, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students
			  SET first_name = $1, last_name = $2, plan = $3, monthly_fee = $4,
				  enrolled_on = $5, status = $6, class_id = $7, updated_at = NOW()
			  WHERE id = $8 AND deleted_at IS NULL
			  RETURNING updated_at`

	err := db.QueryRow(query,
		s.FirstName, s.LastName, s.Plan, s.MonthlyFee, s.EnrolledOn, s.Status, s.ClassID, s.ID,
	).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("student %s not found", s.ID)
	}
	return err
}

// DeleteStudent soft-deletes a student. Callers must refuse deletion while
// payment history references the student; see CountPaymentsForStudent.
func DeleteStudent(db *sql.DB, studentID string) error {
	query := `UPDATE students SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := db.Exec(query, studentID)
	return err
}

// CountPaymentsForStudent counts all payment records, archived included.
func CountPaymentsForStudent(db *sql.DB, studentID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM payment_records WHERE student_id = $1`, studentID).Scan(&count)
	return count, err
}

// StudentReader adapts the students table to the billing engine's read-only
// StudentStore. Store failures are wrapped so the engine can classify them.
type StudentReader struct {
	DB *sql.DB
}

func NewStudentReader(db *sql.DB) *StudentReader {
	return &StudentReader{DB: db}
}

func (r *StudentReader) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_at IS NULL`

	s, err := scanStudent(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("fetch student", err)
	}
	return s, nil
}

func (r *StudentReader) ListActive(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE status = 'active' AND deleted_at IS NULL`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("list active students", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, wrapStoreErr("scan student", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list active students", err)
	}
	return students, nil
}
