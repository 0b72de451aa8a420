package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-backend-go/internal/core"
	"waterbill-backend-go/internal/models"
)

// CustomerHandler handles API endpoints for the customer registry.
type CustomerHandler struct {
	customerService core.CustomerService
	reportService   core.ReportService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs core.CustomerService, rs core.ReportService) *CustomerHandler {
	return &CustomerHandler{customerService: cs, reportService: rs}
}

func mapCustomerErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrCustomerNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrCustomerNotFound.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		mapCustomerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// ListCustomers handles GET /customers?assignedTo=. The optional filter
// narrows the list to one collector's customers by staff UID.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var customers []*models.Customer
	var err error
	if staffUID := c.Query("assignedTo"); staffUID != "" {
		customers, err = h.customerService.ListCustomersByAssignee(c.Request.Context(), staffUID)
	} else {
		customers, err = h.customerService.ListCustomers(c.Request.Context())
	}
	if err != nil {
		mapCustomerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /customers/:customerId
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Customer ID is required"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		mapCustomerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /customers/:customerId
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Customer ID is required"})
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		mapCustomerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/:customerId
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Customer ID is required"})
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		mapCustomerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Customer deleted"})
}

// GetCustomerStatement handles GET /customers/:customerId/statement
func (h *CustomerHandler) GetCustomerStatement(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Customer ID is required"})
		return
	}

	statement, err := h.reportService.CustomerStatement(c.Request.Context(), customerID)
	if err != nil {
		mapCustomerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}
