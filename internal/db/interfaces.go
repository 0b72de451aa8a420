package db

import (
	"context"
	"errors"
	"time"

	"waterbill-backend-go/internal/models"
)

// ErrNotFound is returned when a document does not exist in Firestore.
var ErrNotFound = errors.New("document not found")

// CustomerRepository defines the interface for customer registry storage.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) (string, error) // Returns new customer ID
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	ListByAssignee(ctx context.Context, staffUID string) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, customerID string) error
	// SetAssignments writes assignedTo for every listed customer in one
	// atomic batch; an empty value clears the link. All-or-nothing.
	SetAssignments(ctx context.Context, assignments map[string]string) error
}

// StaffRepository defines the interface for staff registry storage.
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) (string, error) // Returns new staff ID
	GetByID(ctx context.Context, staffID string) (*models.Staff, error)
	GetByUID(ctx context.Context, uid string) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context) ([]*models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, staffID string) error
}

// BillRepository defines the interface for bill storage.
type BillRepository interface {
	GetByID(ctx context.Context, billID string) (*models.Bill, error)
	List(ctx context.Context) ([]*models.Bill, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Bill, error)
	// ListForMonth returns bills whose billDate falls in the calendar month
	// containing the given instant.
	ListForMonth(ctx context.Context, month time.Time) ([]*models.Bill, error)
	// CreateBatch persists all bills in a single atomic commit.
	CreateBatch(ctx context.Context, bills []*models.Bill) error
	// SetStatus updates status and paymentDate together; the pairing is an
	// invariant, so no narrower write exists.
	SetStatus(ctx context.Context, billID, status string, paymentDate *time.Time) error
	Delete(ctx context.Context, billID string) error
	// DeleteBatch removes all listed bills in a single atomic commit.
	DeleteBatch(ctx context.Context, billIDs []string) error
}

// SettingsRepository defines the interface for the billing settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error) // ErrNotFound when absent
	Save(ctx context.Context, settings *models.Settings) error
}
