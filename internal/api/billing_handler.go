package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"waterbill-backend-go/internal/core"
	"waterbill-backend-go/internal/models"
)

// BillingHandler handles API endpoints for the bill lifecycle and billing
// settings.
type BillingHandler struct {
	billingService core.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs core.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

// mapBillingErrorToStatus maps errors from core.BillingService to HTTP status
// codes and ErrorResponse.
func mapBillingErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrBillNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrBillNotFound.Error()}
	case errors.Is(err, core.ErrInvalidPrice):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrInvalidPrice.Error()}
	case errors.Is(err, core.ErrInvalidStatusFilter):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrInvalidStatusFilter.Error(), Details: err.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// GenerateBills handles POST /bills/generate. The manual trigger ignores the
// autoBillGeneration flag; that flag gates only the scheduler.
func (h *BillingHandler) GenerateBills(c *gin.Context) {
	created, err := h.billingService.GenerateMonthlyBills(c.Request.Context())
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}

	message := fmt.Sprintf("Generated %d bills", created)
	if created == 0 {
		message = "No bills to generate; all customers are already billed this month"
	}
	c.JSON(http.StatusOK, GenerationResponse{Message: message, Created: created})
}

// ListBills handles GET /bills?status=&customerId=. Both filters are
// optional; bills come back newest first.
func (h *BillingHandler) ListBills(c *gin.Context) {
	bills, err := h.billingService.ListBills(c.Request.Context(), c.Query("status"), c.Query("customerId"))
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// ChangeBillStatus handles PATCH /bills/:billId/status. No body: the next
// status is determined by the rotation, not the client.
func (h *BillingHandler) ChangeBillStatus(c *gin.Context) {
	billID := c.Param("billId")
	if billID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Bill ID is required"})
		return
	}

	bill, err := h.billingService.ChangeBillStatus(c.Request.Context(), billID)
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// DeleteBill handles DELETE /bills/:billId
func (h *BillingHandler) DeleteBill(c *gin.Context) {
	billID := c.Param("billId")
	if billID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Bill ID is required"})
		return
	}

	if err := h.billingService.DeleteBill(c.Request.Context(), billID); err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Bill deleted"})
}

// DeleteBillsForMonth handles DELETE /bills?month=YYYY-MM
func (h *BillingHandler) DeleteBillsForMonth(c *gin.Context) {
	monthParam := c.Query("month")
	if monthParam == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month query parameter is required (YYYY-MM)"})
		return
	}
	month, err := time.Parse("2006-01", monthParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month format, expected YYYY-MM", Details: err.Error()})
		return
	}

	deleted, err := h.billingService.DeleteBillsForMonth(c.Request.Context(), month)
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, MonthDeleteResponse{
		Message: fmt.Sprintf("Deleted %d bills", deleted),
		Month:   monthParam,
		Deleted: deleted,
	})
}

// GetSettings handles GET /settings
func (h *BillingHandler) GetSettings(c *gin.Context) {
	settings, err := h.billingService.GetSettings(c.Request.Context())
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateFixedPrice handles PUT /settings/fixed-price
func (h *BillingHandler) UpdateFixedPrice(c *gin.Context) {
	var req models.UpdateFixedPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	settings, err := h.billingService.UpdateFixedPrice(c.Request.Context(), req.FixedPrice)
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ToggleAutoGeneration handles POST /settings/auto-generation/toggle
func (h *BillingHandler) ToggleAutoGeneration(c *gin.Context) {
	settings, err := h.billingService.ToggleAutoGeneration(c.Request.Context())
	if err != nil {
		mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
