package handlers

import "github.com/gin-gonic/gin"

// Register wires the HTTP routes onto the router.
func Register(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/classify-issue", h.ClassifyIssue)
		api.POST("/submit-complaint", h.SubmitComplaint)
		api.GET("/track-complaint", h.TrackComplaint)
		api.GET("/all-complaints", h.AllComplaints)
		api.GET("/complaints/:id", h.GetComplaint)
		api.PUT("/complaints/:id/status", h.UpdateStatus)
		api.GET("/complaints-map", h.ComplaintsMap)
		api.GET("/heatmap-data", h.HeatmapData)
		api.GET("/images/:name", h.ServeImage)
	}
}
