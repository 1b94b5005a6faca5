package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nagrik-nivedan/imaging"
	"nagrik-nivedan/models"
	"nagrik-nivedan/service"
	"nagrik-nivedan/storagefs"
)

// Handlers represents the HTTP handlers
type Handlers struct {
	svc             *service.Service
	images          *storagefs.Store
	defaultRadiusKm float64
}

// NewHandlers creates new HTTP handlers. images may be nil when image
// serving is disabled.
func NewHandlers(svc *service.Service, images *storagefs.Store, defaultRadiusKm float64) *Handlers {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 5
	}
	return &Handlers{svc: svc, images: images, defaultRadiusKm: defaultRadiusKm}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nagrik-nivedan",
	})
}

// ClassifyIssue classifies an uploaded image without persisting
// anything.
func (h *Handlers) ClassifyIssue(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	result, err := h.svc.ClassifyImage(req.Image)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Classification failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitComplaint runs the intake pipeline over one submission.
func (h *Handlers) SubmitComplaint(c *gin.Context) {
	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	// Coordinates are both-or-neither.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be provided together"})
		return
	}

	report, err := h.svc.SubmitComplaint(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		Success:     true,
		ComplaintID: report.ID,
		Department:  report.Department,
	})
}

// TrackComplaint lists one reporter's complaints, newest first.
func (h *Handlers) TrackComplaint(c *gin.Context) {
	reporterID := c.Query("user_id")
	reports, err := h.svc.TrackComplaints(c.Request.Context(), reporterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": reports})
}

// AllComplaints lists the newest complaints across reporters.
func (h *Handlers) AllComplaints(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	reports, err := h.svc.AllComplaints(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": reports})
}

// GetComplaint returns one complaint by id.
func (h *Handlers) GetComplaint(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	report, err := h.svc.GetComplaint(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaint"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpdateStatus applies status and priority changes to one complaint.
// Either field may be omitted; values outside the current vocabulary
// are stored verbatim as legacy values.
func (h *Handlers) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	var req struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Status == "" && req.Priority == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status or priority is required"})
		return
	}

	if err := h.svc.UpdateComplaint(c.Request.Context(), id, req.Status, req.Priority); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ComplaintsMap returns located complaints within a radius of a center
// point, annotated with distance.
func (h *Handlers) ComplaintsMap(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lng"})
		return
	}

	radiusKm := h.defaultRadiusKm
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
			return
		}
		radiusKm = parsed
	}

	complaints, err := h.svc.NearbyComplaints(c.Request.Context(), lat, lon, radiusKm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// HeatmapData clusters all located complaints into density cells.
func (h *Handlers) HeatmapData(c *gin.Context) {
	cells, err := h.svc.HeatmapData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build heatmap"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"heatmap": cells})
}

// ServeImage returns a stored report image by filename.
func (h *Handlers) ServeImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image serving disabled"})
		return
	}
	path, err := h.images.Path(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image name"})
		return
	}
	c.File(path)
}
