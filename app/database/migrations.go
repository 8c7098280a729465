package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if needed and applies incremental updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS teachers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			specialty TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL UNIQUE,
			teacher_id UUID REFERENCES teachers(id),
			capacity INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			plan VARCHAR(20) NOT NULL DEFAULT 'monthly',
			monthly_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
			enrolled_on DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			class_id UUID REFERENCES classes(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS payment_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			reference_month CHAR(7) NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			due_date DATE NOT NULL,
			payment_date DATE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			archived_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_status ON students (status)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_records_student ON payment_records (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_records_status ON payment_records (status)`,
		// One open record per student and reference month; archived history
		// is exempt so re-billing a month after close stays possible.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_open_reference_month
			ON payment_records (student_id, reference_month)
			WHERE status <> 'archived'`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
