package database

import (
	"database/sql"
	"fmt"

	"clubhouse/app/models"
)

const teacherColumns = `id, first_name, last_name, email, specialty, is_active, created_at, updated_at`

func scanTeacher(row interface{ Scan(...interface{}) error }) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Specialty,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func GetAllTeachers(db *sql.DB) ([]*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE deleted_at IS NULL ORDER BY last_name, first_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teachers: %v", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func GetTeacherByID(db *sql.DB, teacherID string) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1 AND deleted_at IS NULL`

	t, err := scanTeacher(db.QueryRow(query, teacherID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func CreateTeacher(db *sql.DB, t *models.Teacher) error {
	query := `INSERT INTO teachers (first_name, last_name, email, specialty, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, t.FirstName, t.LastName, t.Email, t.Specialty, t.IsActive).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func UpdateTeacher(db *sql.DB, t *models.Teacher) error {
	query := `UPDATE teachers
			  SET first_name = $1, last_name = $2, email = $3, specialty = $4, is_active = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL
			  RETURNING updated_at`

	err := db.QueryRow(query, t.FirstName, t.LastName, t.Email, t.Specialty, t.IsActive, t.ID).
		Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("teacher %s not found", t.ID)
	}
	return err
}

func DeleteTeacher(db *sql.DB, teacherID string) error {
	query := `UPDATE teachers SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := db.Exec(query, teacherID)
	return err
}
