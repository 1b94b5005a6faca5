package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"

	"nagrik-nivedan/models"
)

var (
	store *Database
	mock  sqlmock.Sqlmock
)

func setUp() {
	var db *sql.DB
	db, mock, _ = sqlmock.New()
	store = NewFromDB(db)
}

func tearDown() {
	store.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func ptr(f float64) *float64 { return &f }

func TestSaveReport(t *testing.T) {
	it(func() {
		report := &models.IssueReport{
			ReporterID:      "citizen-42",
			IssueType:       "potholes",
			Confidence:      ptr(0.91),
			Latitude:        ptr(26.45),
			Longitude:       ptr(80.33),
			Address:         "Jajmau, Kanpur, Uttar Pradesh",
			Description:     "deep pothole near the bus stop",
			FormalComplaint: "Ref: NN-AB12CD34",
			Status:          "pending",
			Priority:        "high",
			Department:      "Public Works",
			ImagePath:       "abc.jpg",
		}

		mock.ExpectExec("INSERT INTO issue_reports").
			WithArgs(report.ReporterID, report.IssueType, report.Confidence,
				report.Latitude, report.Longitude, report.Address,
				report.Description, report.FormalComplaint, report.Status,
				report.Priority, report.Department, report.ImagePath).
			WillReturnResult(sqlmock.NewResult(7, 1))

		id, err := store.SaveReport(context.Background(), report)
		if err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
		if id != 7 {
			t.Errorf("expected id 7, got %d", id)
		}
	})
}

func TestSaveReportError(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO issue_reports").
			WillReturnError(fmt.Errorf("test insert error"))

		_, err := store.SaveReport(context.Background(), &models.IssueReport{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func reportColumnsList() []string {
	return []string{"id", "user_id", "issue_type", "confidence", "latitude", "longitude",
		"address", "description", "formal_complaint", "status", "priority", "department",
		"image_path", "created_at", "updated_at"}
}

func TestGetReport(t *testing.T) {
	it(func() {
		now := time.Now()
		rows := sqlmock.NewRows(reportColumnsList()).
			AddRow(3, "citizen-42", "garbage", 0.75, 26.45, 80.33,
				"Jajmau, Kanpur", "trash pile", "letter body", "pending", "normal",
				"Sanitation", "img.jpg", now, now)

		mock.ExpectQuery("SELECT (.+) FROM issue_reports WHERE id = ?").
			WithArgs(int64(3)).WillReturnRows(rows)

		report, err := store.GetReport(context.Background(), 3)
		if err != nil {
			t.Fatalf("GetReport: %v", err)
		}
		if report.ID != 3 || report.IssueType != "garbage" || report.Department != "Sanitation" {
			t.Errorf("unexpected report: %+v", report)
		}
		if !report.HasLocation() {
			t.Error("expected coordinates to be present")
		}
		if report.Confidence == nil || *report.Confidence != 0.75 {
			t.Errorf("unexpected confidence: %v", report.Confidence)
		}
	})
}

func TestGetReportNullFields(t *testing.T) {
	it(func() {
		now := time.Now()
		rows := sqlmock.NewRows(reportColumnsList()).
			AddRow(4, "anonymous", "potholes", nil, nil, nil,
				"Location not provided", nil, nil, "pending", "normal",
				"Public Works", nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM issue_reports WHERE id = ?").
			WithArgs(int64(4)).WillReturnRows(rows)

		report, err := store.GetReport(context.Background(), 4)
		if err != nil {
			t.Fatalf("GetReport: %v", err)
		}
		if report.HasLocation() {
			t.Error("expected no coordinates")
		}
		if report.Confidence != nil {
			t.Errorf("expected nil confidence, got %v", report.Confidence)
		}
		if report.Address != models.LocationNotProvided {
			t.Errorf("unexpected address: %q", report.Address)
		}
	})
}

func TestGetReportNotFound(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM issue_reports WHERE id = ?").
			WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(reportColumnsList()))

		_, err := store.GetReport(context.Background(), 99)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows, got %v", err)
		}
	})
}

func TestListReports(t *testing.T) {
	it(func() {
		now := time.Now()
		rows := sqlmock.NewRows(reportColumnsList()).
			AddRow(2, "citizen-42", "garbage", nil, nil, nil, "addr", "", "", "pending", "normal", "Sanitation", "", now, now).
			AddRow(1, "citizen-42", "potholes", nil, nil, nil, "addr", "", "", "resolved", "high", "Public Works", "", now, now)

		mock.ExpectQuery("SELECT (.+) FROM issue_reports WHERE user_id = (.+) ORDER BY created_at DESC").
			WithArgs("citizen-42").WillReturnRows(rows)

		reports, err := store.ListReports(context.Background(), "citizen-42")
		if err != nil {
			t.Fatalf("ListReports: %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(reports))
		}
		if reports[0].ID != 2 || reports[1].ID != 1 {
			t.Errorf("unexpected order: %d, %d", reports[0].ID, reports[1].ID)
		}
	})
}

func TestLocatedReports(t *testing.T) {
	it(func() {
		rows := sqlmock.NewRows([]string{"id", "latitude", "longitude", "issue_type", "status", "priority"}).
			AddRow(1, 26.45, 80.33, "potholes", "pending", "high").
			AddRow(2, 26.46, 80.34, "garbage", "in_progress", "normal")

		mock.ExpectQuery("SELECT id, latitude, longitude, issue_type, status, priority").
			WillReturnRows(rows)

		reports, err := store.LocatedReports(context.Background())
		if err != nil {
			t.Fatalf("LocatedReports: %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(reports))
		}
		if reports[0].ID != 1 || reports[0].Latitude != 26.45 {
			t.Errorf("unexpected first report: %+v", reports[0])
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE issue_reports SET status = (.+) WHERE id = ?").
			WithArgs("resolved", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.UpdateStatus(context.Background(), 5, "resolved"); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
	})
}

func TestUpdateStatusNotFound(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE issue_reports SET status = (.+) WHERE id = ?").
			WithArgs("resolved", int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.UpdateStatus(context.Background(), 99, "resolved")
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows, got %v", err)
		}
	})
}

func TestUpdatePriority(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE issue_reports SET priority = (.+) WHERE id = ?").
			WithArgs("urgent", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.UpdatePriority(context.Background(), 5, "urgent"); err != nil {
			t.Fatalf("UpdatePriority: %v", err)
		}
	})
}

func TestUpdatePriorityNotFound(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE issue_reports SET priority = (.+) WHERE id = ?").
			WithArgs("low", int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.UpdatePriority(context.Background(), 99, "low")
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows, got %v", err)
		}
	})
}

func TestSeedDepartments(t *testing.T) {
	it(func() {
		deps := []models.Department{
			{Name: "Public Works", Latitude: 26.46, Longitude: 80.34, IssueTypes: `["potholes"]`, ContactInfo: "pw@example.org"},
			{Name: "Sanitation", Latitude: 26.47, Longitude: 80.35, IssueTypes: `["garbage"]`, ContactInfo: "sn@example.org"},
		}
		for _, dep := range deps {
			mock.ExpectExec("INSERT IGNORE INTO departments").
				WithArgs(dep.Name, dep.Latitude, dep.Longitude, dep.IssueTypes, dep.ContactInfo).
				WillReturnResult(sqlmock.NewResult(1, 1))
		}

		if err := store.SeedDepartments(context.Background(), deps); err != nil {
			t.Fatalf("SeedDepartments: %v", err)
		}
	})
}

func TestDepartmentIssueTypes(t *testing.T) {
	it(func() {
		dep := models.Department{Name: "Public Works", IssueTypes: `["potholes", "street_lights"]`}
		types, err := DepartmentIssueTypes(dep)
		if err != nil {
			t.Fatalf("DepartmentIssueTypes: %v", err)
		}
		if len(types) != 2 || types[0] != "potholes" {
			t.Errorf("unexpected types: %v", types)
		}

		if _, err := DepartmentIssueTypes(models.Department{Name: "Bad", IssueTypes: "not json"}); err == nil {
			t.Error("expected error for malformed issue_types")
		}
	})
}
