package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-backend-go/internal/core"
	"waterbill-backend-go/internal/models"
)

// StaffHandler handles API endpoints for the staff registry.
type StaffHandler struct {
	staffService core.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss core.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

func mapStaffErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrStaffNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrStaffNotFound.Error()}
	case errors.Is(err, core.ErrStaffUIDTaken):
		statusCode = http.StatusConflict
		errResponse = ErrorResponse{Error: core.ErrStaffUIDTaken.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// CreateStaff handles POST /staff
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req models.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		mapStaffErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// ListStaff handles GET /staff
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staffMembers, err := h.staffService.ListStaff(c.Request.Context())
	if err != nil {
		mapStaffErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, staffMembers)
}

// GetStaff handles GET /staff/:staffId
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staffID := c.Param("staffId")
	if staffID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Staff ID is required"})
		return
	}

	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		mapStaffErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff handles PUT /staff/:staffId
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	staffID := c.Param("staffId")
	if staffID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Staff ID is required"})
		return
	}

	var req models.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), staffID, req)
	if err != nil {
		mapStaffErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff handles DELETE /staff/:staffId
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	staffID := c.Param("staffId")
	if staffID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Staff ID is required"})
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), staffID); err != nil {
		mapStaffErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Staff deleted"})
}
