package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/config"
	"waterbill-backend-go/internal/core"
	"waterbill-backend-go/internal/db"
	"waterbill-backend-go/internal/middleware"
)

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is applied to the router before this is called, in main.go.
//
// Route access model: administration (registries, bill lifecycle, settings,
// reports) is restricted to the single configured admin identity; collectors
// only get their own dashboard.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	billingService core.BillingService,
	assignmentService core.AssignmentService,
	customerService core.CustomerService,
	staffService core.StaffService,
	reportService core.ReportService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, appConfig.AdminEmail, logger)

	billingHandler := NewBillingHandler(billingService)
	assignmentHandler := NewAssignmentHandler(assignmentService)
	customerHandler := NewCustomerHandler(customerService, reportService)
	staffHandler := NewStaffHandler(staffService)
	reportHandler := NewReportHandler(reportService)

	apiV1 := router.Group("/api/v1")
	{
		// --- Admin endpoints ---
		adminGroup := apiV1.Group("", authMW.VerifyToken(), authMW.RequireAdmin())
		{
			customersGroup := adminGroup.Group("/customers")
			{
				customersGroup.POST("", customerHandler.CreateCustomer)
				customersGroup.GET("", customerHandler.ListCustomers)
				customersGroup.GET("/:customerId", customerHandler.GetCustomer)
				customersGroup.PUT("/:customerId", customerHandler.UpdateCustomer)
				customersGroup.DELETE("/:customerId", customerHandler.DeleteCustomer)
				customersGroup.GET("/:customerId/statement", customerHandler.GetCustomerStatement)
			}

			staffGroup := adminGroup.Group("/staff")
			{
				staffGroup.POST("", staffHandler.CreateStaff)
				staffGroup.GET("", staffHandler.ListStaff)
				staffGroup.GET("/:staffId", staffHandler.GetStaff)
				staffGroup.PUT("/:staffId", staffHandler.UpdateStaff)
				staffGroup.DELETE("/:staffId", staffHandler.DeleteStaff)
			}

			billsGroup := adminGroup.Group("/bills")
			{
				// GET /api/v1/bills?status=&customerId=
				billsGroup.GET("", billingHandler.ListBills)
				billsGroup.POST("/generate", billingHandler.GenerateBills)
				billsGroup.PATCH("/:billId/status", billingHandler.ChangeBillStatus)
				billsGroup.DELETE("/:billId", billingHandler.DeleteBill)
				// DELETE /api/v1/bills?month=YYYY-MM
				billsGroup.DELETE("", billingHandler.DeleteBillsForMonth)
			}

			settingsGroup := adminGroup.Group("/settings")
			{
				settingsGroup.GET("", billingHandler.GetSettings)
				settingsGroup.PUT("/fixed-price", billingHandler.UpdateFixedPrice)
				settingsGroup.POST("/auto-generation/toggle", billingHandler.ToggleAutoGeneration)
			}

			adminGroup.POST("/assignments/toggle", assignmentHandler.ToggleAssignment)

			reportsGroup := adminGroup.Group("/reports")
			{
				reportsGroup.GET("/overview", reportHandler.GetOverview)
				reportsGroup.GET("/staff", reportHandler.ListStaffSummaries)
			}
		}

		// --- Collector endpoint ---
		// Any authenticated staff account can read its own dashboard.
		apiV1.GET("/reports/me", authMW.VerifyToken(), reportHandler.GetMyDashboard)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1 and /health")
}
