package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-backend-go/internal/core"
)

// ReportHandler handles the read-side aggregation endpoints.
type ReportHandler struct {
	reportService core.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs core.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetOverview handles GET /reports/overview
func (h *ReportHandler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Overview(c.Request.Context()))
}

// ListStaffSummaries handles GET /reports/staff
func (h *ReportHandler) ListStaffSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.StaffSummaries(c.Request.Context()))
}

// GetMyDashboard handles GET /reports/me. It resolves the signed-in identity
// to a staff record by email and returns that collector's summary.
func (h *ReportHandler) GetMyDashboard(c *gin.Context) {
	email := c.GetString("userEmail")
	if email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authenticated email not found in context"})
		return
	}

	summary, err := h.reportService.StaffSummaryByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, core.ErrStaffNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No staff record matches the signed-in account"})
			return
		}
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, summary)
}
