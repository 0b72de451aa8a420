package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-backend-go/internal/core"
	"waterbill-backend-go/internal/models"
)

// AssignmentHandler handles the customer-to-staff assignment toggle.
type AssignmentHandler struct {
	assignmentService core.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(as core.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as}
}

func mapAssignmentErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrStaffNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrStaffNotFound.Error(), Details: err.Error()}
	case errors.Is(err, core.ErrCustomerNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrCustomerNotFound.Error(), Details: err.Error()}
	case errors.Is(err, core.ErrNoCustomersSelected):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrNoCustomersSelected.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// ToggleAssignment handles POST /assignments/toggle. One unknown customer in
// the selection fails the whole request; nothing is written.
func (h *AssignmentHandler) ToggleAssignment(c *gin.Context) {
	var req models.ToggleAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	result, err := h.assignmentService.ToggleAssignment(c.Request.Context(), req.StaffUID, req.CustomerIDs)
	if err != nil {
		mapAssignmentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
