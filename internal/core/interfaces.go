package core

import (
	"context"
	"time"

	"waterbill-backend-go/internal/models"
)

// BillingService owns the bill lifecycle: monthly generation, the status
// cycle, month-scoped deletion, and the billing settings singleton.
type BillingService interface {
	// GenerateMonthlyBills creates one pending bill for every customer who
	// does not already have a bill this calendar month. Returns the number
	// of bills created; zero is a normal outcome, not an error.
	GenerateMonthlyBills(ctx context.Context) (int, error)
	// ListBills returns bills newest first, optionally narrowed to one
	// status and/or one customer. Empty filters mean no filtering.
	ListBills(ctx context.Context, status, customerID string) ([]*models.Bill, error)
	// ChangeBillStatus rotates the bill one step through
	// paid -> not paid -> pending -> paid, stamping or clearing
	// paymentDate as the status enters or leaves paid.
	ChangeBillStatus(ctx context.Context, billID string) (*models.Bill, error)
	DeleteBill(ctx context.Context, billID string) error
	// DeleteBillsForMonth removes every bill whose billDate falls in the
	// given calendar month, atomically. Returns the number removed.
	DeleteBillsForMonth(ctx context.Context, month time.Time) (int, error)
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateFixedPrice(ctx context.Context, price float64) (*models.Settings, error)
	ToggleAutoGeneration(ctx context.Context) (*models.Settings, error)
}

// AssignmentResult reports a mixed toggle outcome. Assigned and Unassigned
// are disjoint customer ID sets and must be reported distinctly.
type AssignmentResult struct {
	Assigned   []string `json:"assigned"`
	Unassigned []string `json:"unassigned"`
}

// AssignmentService toggles the customer -> staff collection link.
type AssignmentService interface {
	// ToggleAssignment flips each customer individually: already assigned
	// to staffUID means unassign, anything else means assign (overwriting
	// a prior link). The underlying write is a single atomic batch.
	ToggleAssignment(ctx context.Context, staffUID string, customerIDs []string) (*AssignmentResult, error)
}

// CustomerService manages the customer registry.
type CustomerService interface {
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	// ListCustomersByAssignee returns the customers collected by the staff
	// member holding the given Firebase Auth UID.
	ListCustomersByAssignee(ctx context.Context, staffUID string) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req models.UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// StaffService manages the staff registry.
type StaffService interface {
	CreateStaff(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error)
	GetStaffByID(ctx context.Context, staffID string) (*models.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	ListStaff(ctx context.Context) ([]*models.Staff, error)
	UpdateStaff(ctx context.Context, staffID string, req models.UpdateStaffRequest) (*models.Staff, error)
	DeleteStaff(ctx context.Context, staffID string) error
}

// SnapshotSource supplies the current view of the three input collections
// the aggregation layer folds over. Implemented by db.SnapshotCache.
type SnapshotSource interface {
	Customers() []*models.Customer
	Staff() []*models.Staff
	Bills() []*models.Bill
}

// ReportService serves the derived read-side figures. It holds no state of
// its own; every call recomputes from the snapshot source.
type ReportService interface {
	Overview(ctx context.Context) *Overview
	StaffSummaries(ctx context.Context) []StaffSummary
	StaffSummaryByEmail(ctx context.Context, email string) (*StaffSummary, error)
	CustomerStatement(ctx context.Context, customerID string) (*CustomerStatement, error)
}
