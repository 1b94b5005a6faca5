// Package service orchestrates the complaint intake pipeline and the
// read-side queries over stored reports.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"

	"nagrik-nivedan/classifier"
	"nagrik-nivedan/complaint"
	"nagrik-nivedan/departments"
	"nagrik-nivedan/geo"
	"nagrik-nivedan/geocoder"
	"nagrik-nivedan/imaging"
	"nagrik-nivedan/metrics"
	"nagrik-nivedan/models"
	"nagrik-nivedan/spatial"
)

// Store is the persistence surface the service needs.
type Store interface {
	SaveReport(ctx context.Context, report *models.IssueReport) (int64, error)
	GetReport(ctx context.Context, id int64) (*models.IssueReport, error)
	ListReports(ctx context.Context, reporterID string) ([]*models.IssueReport, error)
	ListAllReports(ctx context.Context, limit int) ([]*models.IssueReport, error)
	LocatedReports(ctx context.Context) ([]models.LocatedReport, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdatePriority(ctx context.Context, id int64, priority string) error
}

// AddressResolver turns coordinates into an address, never failing
// outward.
type AddressResolver interface {
	Resolve(lat, lon float64) string
}

// LetterGenerator drafts the formal complaint text.
type LetterGenerator interface {
	Generate(req complaint.Request) (string, error)
}

// ImageStore persists uploaded image bytes and returns the stored name.
type ImageStore interface {
	Save(data []byte, mimeType string) (string, error)
}

// EventPublisher emits submitted-report events. A nil publisher
// disables publishing.
type EventPublisher interface {
	Publish(message interface{}) error
}

// Service wires the intake pipeline together.
type Service struct {
	store     Store
	model     *classifier.Model
	resolver  AddressResolver
	letters   LetterGenerator
	images    ImageStore
	publisher EventPublisher
}

// NewService builds the pipeline from its parts. images and publisher
// may be nil; the corresponding steps are skipped.
func NewService(store Store, model *classifier.Model, resolver AddressResolver,
	letters LetterGenerator, images ImageStore, publisher EventPublisher) *Service {
	return &Service{
		store:     store,
		model:     model,
		resolver:  resolver,
		letters:   letters,
		images:    images,
		publisher: publisher,
	}
}

// ClassifyImage decodes a base64 or data-URL image and runs the
// classifier over it.
func (s *Service) ClassifyImage(encoded string) (models.Classification, error) {
	buf, err := imaging.Decode(encoded)
	if err != nil {
		return models.Classification{}, err
	}
	result, err := s.model.Classify(buf)
	if err != nil {
		return models.Classification{}, err
	}
	metrics.ClassificationsTotal.WithLabelValues(result.IssueType).Inc()
	return result, nil
}

// SubmitComplaint runs the full intake pipeline over one submission and
// returns the persisted report.
func (s *Service) SubmitComplaint(ctx context.Context, req models.SubmitRequest) (*models.IssueReport, error) {
	started := time.Now()
	report, err := s.submit(ctx, req)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SubmissionsTotal.WithLabelValues(result).Inc()
	metrics.IntakeDurationSeconds.WithLabelValues(result).Observe(time.Since(started).Seconds())
	return report, err
}

func (s *Service) submit(ctx context.Context, req models.SubmitRequest) (*models.IssueReport, error) {
	reporterID := req.ReporterID
	if reporterID == "" {
		reporterID = models.AnonymousReporter
	}

	priority := string(models.ParsePriority(req.Priority))
	if priority == "" {
		priority = string(models.PriorityNormal)
	}

	issueType := req.IssueType
	var confidence *float64
	var imagePath string

	if req.Image != "" {
		mimeHint, raw, err := imaging.DecodeBase64(req.Image)
		if err != nil {
			return nil, fmt.Errorf("invalid image payload: %w", err)
		}
		if s.images != nil {
			name, err := s.images.Save(raw, mimeHint)
			if err != nil {
				// Storage is best-effort; the complaint still goes through.
				log.WithError(err).Warn("failed to persist uploaded image")
			} else {
				imagePath = name
			}
		}
		if issueType == "" {
			buf, err := imaging.DecodePixels(raw, mimeHint)
			if err != nil {
				return nil, fmt.Errorf("invalid image payload: %w", err)
			}
			result, err := s.model.Classify(buf)
			if err != nil {
				return nil, fmt.Errorf("classification failed: %w", err)
			}
			metrics.ClassificationsTotal.WithLabelValues(result.IssueType).Inc()
			issueType = result.IssueType
			confidence = &result.Confidence
		}
	}
	if issueType == "" {
		return nil, fmt.Errorf("issue_type is required when no image is provided")
	}

	address := req.Address
	hasLocation := req.Latitude != nil && req.Longitude != nil
	if address == "" {
		if hasLocation {
			address = s.resolver.Resolve(*req.Latitude, *req.Longitude)
			if address == geocoder.AddressNotFound {
				metrics.GeocodeFailuresTotal.Inc()
			}
		} else {
			address = models.LocationNotProvided
		}
	}

	department := departments.Route(issueType)

	letter, err := s.letters.Generate(complaint.Request{
		IssueType:   issueType,
		Description: req.Description,
		Address:     address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Priority:    priority,
		Department:  department,
		ReporterID:  reporterID,
	})
	if err != nil {
		return nil, fmt.Errorf("complaint generation failed: %w", err)
	}

	report := &models.IssueReport{
		ReporterID:      reporterID,
		IssueType:       issueType,
		Confidence:      confidence,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         address,
		Description:     req.Description,
		FormalComplaint: letter,
		Status:          string(models.StatusPending),
		Priority:        priority,
		Department:      department,
		ImagePath:       imagePath,
	}

	id, err := s.store.SaveReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to persist complaint: %w", err)
	}
	report.ID = id
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	s.publishSubmitted(report)
	return report, nil
}

// publishSubmitted emits the submitted-report event. Publish failures
// never fail the submission.
func (s *Service) publishSubmitted(report *models.IssueReport) {
	if s.publisher == nil {
		return
	}
	event := models.SubmittedReportEvent{
		ComplaintID: report.ID,
		IssueType:   report.IssueType,
		Department:  report.Department,
		Priority:    report.Priority,
		Address:     report.Address,
		ReporterID:  report.ReporterID,
		CreatedAt:   report.CreatedAt,
	}
	if err := s.publisher.Publish(event); err != nil {
		metrics.PublishErrorTotal.Inc()
		log.WithError(err).WithField("complaint_id", report.ID).
			Warn("failed to publish submitted-report event")
	}
}

// GetComplaint fetches one complaint by id.
func (s *Service) GetComplaint(ctx context.Context, id int64) (*models.IssueReport, error) {
	return s.store.GetReport(ctx, id)
}

// TrackComplaints lists a reporter's complaints, newest first.
func (s *Service) TrackComplaints(ctx context.Context, reporterID string) ([]*models.IssueReport, error) {
	if reporterID == "" {
		reporterID = models.AnonymousReporter
	}
	return s.store.ListReports(ctx, reporterID)
}

// AllComplaints lists the newest complaints across reporters.
func (s *Service) AllComplaints(ctx context.Context, limit int) ([]*models.IssueReport, error) {
	return s.store.ListAllReports(ctx, limit)
}

// NearbyComplaints returns located complaints within radiusKm of the
// center, in stored order, annotated with distance.
func (s *Service) NearbyComplaints(ctx context.Context, lat, lon, radiusKm float64) ([]models.NearbyComplaint, error) {
	located, err := s.store.LocatedReports(ctx)
	if err != nil {
		return nil, err
	}
	return spatial.Nearby(geo.Point{Lat: lat, Lon: lon}, radiusKm, located), nil
}

// HeatmapData clusters all located complaints into density cells.
func (s *Service) HeatmapData(ctx context.Context) ([]models.HeatmapPoint, error) {
	located, err := s.store.LocatedReports(ctx)
	if err != nil {
		return nil, err
	}
	return spatial.Heatmap(located), nil
}

// UpdateComplaint applies status and priority changes to one
// complaint. Empty fields are left unchanged. Known values are
// canonicalized; anything else is stored verbatim as a legacy value,
// matching how historical records are read back.
func (s *Service) UpdateComplaint(ctx context.Context, id int64, status, priority string) error {
	if status == "" && priority == "" {
		return fmt.Errorf("nothing to update")
	}
	if status != "" {
		if err := s.store.UpdateStatus(ctx, id, string(models.ParseStatus(status))); err != nil {
			return err
		}
	}
	if priority != "" {
		if err := s.store.UpdatePriority(ctx, id, string(models.ParsePriority(priority))); err != nil {
			return err
		}
	}
	return nil
}
