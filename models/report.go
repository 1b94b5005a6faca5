package models

import (
	"time"
)

// AnonymousReporter is stored when a submission carries no reporter id.
const AnonymousReporter = "anonymous"

// LocationNotProvided is the address stored when a submission has no
// coordinates.
const LocationNotProvided = "Location not provided"

// IssueReport is one citizen submission as persisted in the
// issue_reports table.
type IssueReport struct {
	ID              int64     `json:"id"`
	ReporterID      string    `json:"user_id"`
	IssueType       string    `json:"issue_type"`
	Confidence      *float64  `json:"confidence,omitempty"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Address         string    `json:"address"`
	Description     string    `json:"description"`
	FormalComplaint string    `json:"formal_complaint,omitempty"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	Department      string    `json:"department"`
	ImagePath       string    `json:"image_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasLocation reports whether the submission carried coordinates. The
// pair is both-or-neither; a record never has only one of the two.
func (r *IssueReport) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Department is a static reference entity seeded at first startup.
type Department struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IssueTypes  string  `json:"issue_types"` // JSON array of handled labels
	ContactInfo string  `json:"contact_info"`
}

// LocatedReport is the slice of an issue report the spatial queries
// operate on. Only reports with coordinates are represented.
type LocatedReport struct {
	ID        int64   `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IssueType string  `json:"issue_type"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
}

// NearbyComplaint is a located report annotated with its distance from
// the query center.
type NearbyComplaint struct {
	ID         int64   `json:"id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IssueType  string  `json:"issue_type"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	DistanceKm float64 `json:"distance"`
}

// ComplaintSummary is the lightweight per-member record embedded in a
// heatmap cell.
type ComplaintSummary struct {
	ID        int64  `json:"id"`
	IssueType string `json:"issue_type"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
}

// HeatmapPoint is one density cell: a fixed center, a saturating
// intensity weight and the member summaries.
type HeatmapPoint struct {
	Lat        float64            `json:"lat"`
	Lng        float64            `json:"lng"`
	Weight     float64            `json:"weight"`
	Count      int                `json:"count"`
	Complaints []ComplaintSummary `json:"complaints"`
}

// Classification is the label/confidence pair produced by the
// classifier for a decoded image.
type Classification struct {
	IssueType  string  `json:"issue_type"`
	Confidence float64 `json:"confidence"`
}

// SubmitRequest is the intake payload for a new complaint.
type SubmitRequest struct {
	ReporterID  string   `json:"user_id"`
	IssueType   string   `json:"issue_type"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Address     string   `json:"address"`
	Priority    string   `json:"priority"`
	Image       string   `json:"image"` // optional base64 or data URL
}

// SubmitResponse acknowledges a persisted complaint.
type SubmitResponse struct {
	Success     bool   `json:"success"`
	ComplaintID int64  `json:"complaint_id"`
	Department  string `json:"department"`
}

// SubmittedReportEvent is the message published after a complaint is
// persisted.
type SubmittedReportEvent struct {
	ComplaintID int64     `json:"complaint_id"`
	IssueType   string    `json:"issue_type"`
	Department  string    `json:"department"`
	Priority    string    `json:"priority"`
	Address     string    `json:"address"`
	ReporterID  string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
