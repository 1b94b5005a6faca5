package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"

	"nagrik-nivedan/config"
	"nagrik-nivedan/models"
)

// Database wraps the MySQL connection used by the service.
type Database struct {
	db *sql.DB
}

// NewDatabase opens a connection pool and waits for the server to
// accept pings, with exponential backoff.
func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var waitInterval = 1 * time.Second
	for {
		if err := db.Ping(); err == nil {
			break
		} else {
			log.WithError(err).WithField("retry_in", waitInterval.String()).
				Warn("database connection failed, retrying")
		}
		time.Sleep(waitInterval)
		waitInterval *= 2
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Database{db: db}, nil
}

// NewFromDB wraps an existing connection, used by tests.
func NewFromDB(db *sql.DB) *Database {
	return &Database{db: db}
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// CreateTables creates the issue_reports and departments tables if they
// don't exist.
func (d *Database) CreateTables(ctx context.Context) error {
	reports := `
	CREATE TABLE IF NOT EXISTS issue_reports (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL DEFAULT 'anonymous',
		issue_type VARCHAR(64) NOT NULL,
		confidence FLOAT NULL,
		latitude DOUBLE NULL,
		longitude DOUBLE NULL,
		address TEXT NOT NULL,
		description TEXT,
		formal_complaint MEDIUMTEXT,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		priority VARCHAR(32) NOT NULL DEFAULT 'normal',
		department VARCHAR(128) NOT NULL,
		image_path VARCHAR(255) DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_issue_reports_user_id (user_id),
		INDEX idx_issue_reports_status (status),
		INDEX idx_issue_reports_issue_type (issue_type),
		INDEX idx_issue_reports_location (latitude, longitude)
	)`

	departments := `
	CREATE TABLE IF NOT EXISTS departments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(128) NOT NULL UNIQUE,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		issue_types TEXT NOT NULL,
		contact_info VARCHAR(255) DEFAULT ''
	)`

	for _, query := range []string{reports, departments} {
		if _, err := d.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// SeedDepartments inserts the static department roster, skipping rows
// that already exist.
func (d *Database) SeedDepartments(ctx context.Context, departments []models.Department) error {
	query := `
		INSERT IGNORE INTO departments (name, latitude, longitude, issue_types, contact_info)
		VALUES (?, ?, ?, ?, ?)`

	for _, dep := range departments {
		if _, err := d.db.ExecContext(ctx, query,
			dep.Name, dep.Latitude, dep.Longitude, dep.IssueTypes, dep.ContactInfo); err != nil {
			return fmt.Errorf("failed to seed department %s: %w", dep.Name, err)
		}
	}
	return nil
}

// SaveReport persists a new issue report and returns its id.
func (d *Database) SaveReport(ctx context.Context, report *models.IssueReport) (int64, error) {
	query := `
		INSERT INTO issue_reports
			(user_id, issue_type, confidence, latitude, longitude, address,
			 description, formal_complaint, status, priority, department, image_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := d.db.ExecContext(ctx, query,
		report.ReporterID,
		report.IssueType,
		report.Confidence,
		report.Latitude,
		report.Longitude,
		report.Address,
		report.Description,
		report.FormalComplaint,
		report.Status,
		report.Priority,
		report.Department,
		report.ImagePath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert issue report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted report id: %w", err)
	}
	return id, nil
}

const reportColumns = `id, user_id, issue_type, confidence, latitude, longitude,
	address, description, formal_complaint, status, priority, department,
	image_path, created_at, updated_at`

func scanReport(row interface{ Scan(...interface{}) error }) (*models.IssueReport, error) {
	var r models.IssueReport
	var confidence sql.NullFloat64
	var latitude, longitude sql.NullFloat64
	var description, formal, imagePath sql.NullString

	err := row.Scan(
		&r.ID, &r.ReporterID, &r.IssueType, &confidence, &latitude, &longitude,
		&r.Address, &description, &formal, &r.Status, &r.Priority, &r.Department,
		&imagePath, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if confidence.Valid {
		r.Confidence = &confidence.Float64
	}
	if latitude.Valid && longitude.Valid {
		r.Latitude = &latitude.Float64
		r.Longitude = &longitude.Float64
	}
	r.Description = description.String
	r.FormalComplaint = formal.String
	r.ImagePath = imagePath.String
	return &r, nil
}

// GetReport fetches one issue report by id. Returns sql.ErrNoRows when
// the id does not exist.
func (d *Database) GetReport(ctx context.Context, id int64) (*models.IssueReport, error) {
	query := `SELECT ` + reportColumns + ` FROM issue_reports WHERE id = ?`
	report, err := scanReport(d.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns reports for one reporter, newest first.
func (d *Database) ListReports(ctx context.Context, reporterID string) ([]*models.IssueReport, error) {
	query := `SELECT ` + reportColumns + ` FROM issue_reports WHERE user_id = ? ORDER BY created_at DESC`
	return d.queryReports(ctx, query, reporterID)
}

// ListAllReports returns every report, newest first, capped by limit.
func (d *Database) ListAllReports(ctx context.Context, limit int) ([]*models.IssueReport, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + reportColumns + ` FROM issue_reports ORDER BY created_at DESC LIMIT ?`
	return d.queryReports(ctx, query, limit)
}

func (d *Database) queryReports(ctx context.Context, query string, args ...interface{}) ([]*models.IssueReport, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issue reports: %w", err)
	}
	defer rows.Close()

	reports := []*models.IssueReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate issue reports: %w", err)
	}
	return reports, nil
}

// LocatedReports returns the coordinate snapshot the spatial queries
// run against. Rows without coordinates are excluded by the query.
func (d *Database) LocatedReports(ctx context.Context) ([]models.LocatedReport, error) {
	query := `
		SELECT id, latitude, longitude, issue_type, status, priority
		FROM issue_reports
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY id`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query located reports: %w", err)
	}
	defer rows.Close()

	reports := []models.LocatedReport{}
	for rows.Next() {
		var r models.LocatedReport
		if err := rows.Scan(&r.ID, &r.Latitude, &r.Longitude, &r.IssueType, &r.Status, &r.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan located report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate located reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus sets a report's status; updated_at refreshes via the
// table's ON UPDATE clause. Returns sql.ErrNoRows when the id does not
// exist.
func (d *Database) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE issue_reports SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePriority sets a report's priority; updated_at refreshes via the
// table's ON UPDATE clause. Returns sql.ErrNoRows when the id does not
// exist.
func (d *Database) UpdatePriority(ctx context.Context, id int64, priority string) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE issue_reports SET priority = ? WHERE id = ?`, priority, id)
	if err != nil {
		return fmt.Errorf("failed to update report priority: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Departments returns the seeded department roster.
func (d *Database) Departments(ctx context.Context) ([]models.Department, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, latitude, longitude, issue_types, contact_info FROM departments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		var dep models.Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.Latitude, &dep.Longitude, &dep.IssueTypes, &dep.ContactInfo); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return departments, nil
}

// DepartmentIssueTypes decodes the issue_types JSON column.
func DepartmentIssueTypes(dep models.Department) ([]string, error) {
	var types []string
	if err := json.Unmarshal([]byte(dep.IssueTypes), &types); err != nil {
		return nil, fmt.Errorf("malformed issue_types for department %s: %w", dep.Name, err)
	}
	return types, nil
}
