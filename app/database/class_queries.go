package database

import (
	"database/sql"
	"fmt"

	"clubhouse/app/models"
)

// GetAllClasses returns all non-deleted classes with their student counts.
func GetAllClasses(db *sql.DB) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.code, c.teacher_id, c.capacity, c.is_active, c.created_at, c.updated_at,
			  COUNT(s.id) AS student_count
			  FROM classes c
			  LEFT JOIN students s ON s.class_id = c.id AND s.deleted_at IS NULL
			  WHERE c.deleted_at IS NULL
			  GROUP BY c.id, c.name, c.code, c.teacher_id, c.capacity, c.is_active, c.created_at, c.updated_at
			  ORDER BY c.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classes: %v", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		err := rows.Scan(
			&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.Capacity,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.StudentCount,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func GetClassByID(db *sql.DB, classID string) (*models.Class, error) {
	query := `SELECT id, name, code, teacher_id, capacity, is_active, created_at, updated_at
			  FROM classes WHERE id = $1 AND deleted_at IS NULL`

	c := &models.Class{}
	err := db.QueryRow(query, classID).Scan(
		&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.Capacity,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func CreateClass(db *sql.DB, c *models.Class) error {
	query := `INSERT INTO classes (name, code, teacher_id, capacity, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, c.Name, c.Code, c.TeacherID, c.Capacity, c.IsActive).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func UpdateClass(db *sql.DB, c *models.Class) error {
	query := `UPDATE classes
			  SET name = $1, code = $2, teacher_id = $3, capacity = $4, is_active = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL
			  RETURNING updated_at`

	err := db.QueryRow(query, c.Name, c.Code, c.TeacherID, c.Capacity, c.IsActive, c.ID).
		Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("class %s not found", c.ID)
	}
	return err
}

func DeleteClass(db *sql.DB, classID string) error {
	query := `UPDATE classes SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := db.Exec(query, classID)
	return err
}
