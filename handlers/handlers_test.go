package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"nagrik-nivedan/classifier"
	"nagrik-nivedan/complaint"
	"nagrik-nivedan/models"
	"nagrik-nivedan/service"
)

type stubStore struct {
	saved   []*models.IssueReport
	located []models.LocatedReport
}

func (s *stubStore) SaveReport(_ context.Context, report *models.IssueReport) (int64, error) {
	s.saved = append(s.saved, report)
	return int64(len(s.saved)), nil
}

func (s *stubStore) GetReport(_ context.Context, id int64) (*models.IssueReport, error) {
	for _, r := range s.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubStore) ListReports(_ context.Context, reporterID string) ([]*models.IssueReport, error) {
	out := []*models.IssueReport{}
	for _, r := range s.saved {
		if r.ReporterID == reporterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) ListAllReports(_ context.Context, limit int) ([]*models.IssueReport, error) {
	return s.saved, nil
}

func (s *stubStore) LocatedReports(_ context.Context) ([]models.LocatedReport, error) {
	return s.located, nil
}

func (s *stubStore) UpdateStatus(_ context.Context, id int64, status string) error {
	for _, r := range s.saved {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *stubStore) UpdatePriority(_ context.Context, id int64, priority string) error {
	for _, r := range s.saved {
		if r.ID == id {
			r.Priority = priority
			return nil
		}
	}
	return sql.ErrNoRows
}

type stubResolver struct{}

func (stubResolver) Resolve(lat, lon float64) string { return "Jajmau, Kanpur, Uttar Pradesh" }

type stubLetters struct{}

func (stubLetters) Generate(req complaint.Request) (string, error) {
	return "LETTER " + req.IssueType, nil
}

func testModel(t *testing.T) *classifier.Model {
	t.Helper()
	labels := []string{"potholes", "street_lights", "garbage", "water_leakage", "traffic_signals", "broken_sidewalks"}
	size := 4
	weights := make([][]float64, len(labels))
	for i := range weights {
		weights[i] = make([]float64, size*size*3)
	}
	bias := make([]float64, len(labels))
	bias[0] = 5
	model, err := classifier.New(classifier.Artifact{
		InputSize: size, Labels: labels, Weights: weights, Bias: bias,
	})
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	return model
}

func testJPEG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestRouter(t *testing.T, store *stubStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewService(store, testModel(t), stubResolver{}, stubLetters{}, nil, nil)
	router := gin.New()
	Register(router, NewHandlers(svc, nil, 5))
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, &stubStore{})
	w := doJSON(router, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestClassifyIssue(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doJSON(router, "POST", "/api/classify-issue", gin.H{"image": testJPEG(t)})
	assert.Equal(t, http.StatusOK, w.Code)

	var result models.Classification
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "potholes", result.IssueType)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestClassifyIssueBadPayload(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doJSON(router, "POST", "/api/classify-issue", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/classify-issue", gin.H{"image": "!!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitComplaint(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(t, store)

	w := doJSON(router, "POST", "/api/submit-complaint", gin.H{
		"user_id":     "citizen-42",
		"issue_type":  "garbage",
		"description": "trash pile",
		"latitude":    26.45,
		"longitude":   80.33,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SubmitResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.ComplaintID)
	assert.Equal(t, "Sanitation", resp.Department)
	assert.Len(t, store.saved, 1)
}

func TestSubmitComplaintHalfCoordinates(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doJSON(router, "POST", "/api/submit-complaint", gin.H{
		"issue_type": "garbage",
		"latitude":   26.45,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackComplaint(t *testing.T) {
	store := &stubStore{saved: []*models.IssueReport{
		{ID: 1, ReporterID: "citizen-42", IssueType: "potholes"},
		{ID: 2, ReporterID: "someone-else", IssueType: "garbage"},
	}}
	router := newTestRouter(t, store)

	w := doJSON(router, "GET", "/api/track-complaint?user_id=citizen-42", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Complaints []models.IssueReport `json:"complaints"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Complaints, 1)
	assert.Equal(t, int64(1), resp.Complaints[0].ID)
}

func TestGetComplaint(t *testing.T) {
	store := &stubStore{saved: []*models.IssueReport{
		{ID: 1, ReporterID: "citizen-42", IssueType: "potholes", Status: "pending"},
	}}
	router := newTestRouter(t, store)

	w := doJSON(router, "GET", "/api/complaints/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/complaints/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/api/complaints/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	store := &stubStore{saved: []*models.IssueReport{
		{ID: 1, Status: "pending", Priority: "normal"},
	}}
	router := newTestRouter(t, store)

	w := doJSON(router, "PUT", "/api/complaints/1/status", gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "resolved", store.saved[0].Status)

	// Values outside the current vocabulary are stored verbatim.
	w = doJSON(router, "PUT", "/api/complaints/1/status", gin.H{"status": "under_review"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "under_review", store.saved[0].Status)

	w = doJSON(router, "PUT", "/api/complaints/99/status", gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusWithPriority(t *testing.T) {
	store := &stubStore{saved: []*models.IssueReport{
		{ID: 1, Status: "pending", Priority: "normal"},
	}}
	router := newTestRouter(t, store)

	w := doJSON(router, "PUT", "/api/complaints/1/status", gin.H{"status": "in_progress", "priority": "Urgent"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", store.saved[0].Status)
	assert.Equal(t, "urgent", store.saved[0].Priority)

	w = doJSON(router, "PUT", "/api/complaints/1/status", gin.H{"priority": "low"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", store.saved[0].Status)
	assert.Equal(t, "low", store.saved[0].Priority)

	w = doJSON(router, "PUT", "/api/complaints/1/status", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintsMap(t *testing.T) {
	store := &stubStore{located: []models.LocatedReport{
		{ID: 1, Latitude: 26.45, Longitude: 80.33, IssueType: "potholes"},
		{ID: 2, Latitude: 28.61, Longitude: 77.21, IssueType: "garbage"},
	}}
	router := newTestRouter(t, store)

	w := doJSON(router, "GET", "/api/complaints-map?lat=26.45&lng=80.33&radius=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Complaints []models.NearbyComplaint `json:"complaints"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Complaints, 1)
	assert.Equal(t, int64(1), resp.Complaints[0].ID)
}

func TestComplaintsMapBadParams(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doJSON(router, "GET", "/api/complaints-map?lat=abc&lng=80.33", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "GET", "/api/complaints-map?lat=26.45&lng=80.33&radius=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHeatmapData(t *testing.T) {
	store := &stubStore{located: []models.LocatedReport{
		{ID: 1, Latitude: 26.45, Longitude: 80.33},
		{ID: 2, Latitude: 26.4501, Longitude: 80.3301},
	}}
	router := newTestRouter(t, store)

	w := doJSON(router, "GET", "/api/heatmap-data", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Heatmap []models.HeatmapPoint `json:"heatmap"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Heatmap, 1)
	assert.Equal(t, 2, resp.Heatmap[0].Count)
}
