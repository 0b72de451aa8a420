package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"waterbill-backend-go/internal/db"
)

// ErrStaffNotFound is returned when a staff member is not found.
var ErrStaffNotFound = errors.New("staff not found")

// ErrCustomerNotFound is returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrNoCustomersSelected is returned when an assignment toggle names no
// customers.
var ErrNoCustomersSelected = errors.New("no customers selected")

// assignmentService implements the AssignmentService interface.
type assignmentService struct {
	customerRepo db.CustomerRepository
	staffRepo    db.StaffRepository
	logger       *zap.Logger
}

// NewAssignmentService creates a new AssignmentService instance.
func NewAssignmentService(customerRepo db.CustomerRepository, staffRepo db.StaffRepository, logger *zap.Logger) AssignmentService {
	if customerRepo == nil || staffRepo == nil {
		panic("AssignmentService requires non-nil repositories")
	}
	if logger == nil {
		panic("AssignmentService requires a non-nil zap.Logger instance")
	}
	return &assignmentService{
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		logger:       logger,
	}
}

// ToggleAssignment flips the staff link for each selected customer and
// commits the whole batch atomically. Every customer is validated up front;
// one unknown ID fails the entire request and nothing is written.
func (s *assignmentService) ToggleAssignment(ctx context.Context, staffUID string, customerIDs []string) (*AssignmentResult, error) {
	if len(customerIDs) == 0 {
		return nil, ErrNoCustomersSelected
	}

	staff, err := s.staffRepo.GetByUID(ctx, staffUID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff with UID '%s'", ErrStaffNotFound, staffUID)
		}
		return nil, fmt.Errorf("failed to resolve staff UID '%s': %w", staffUID, err)
	}

	result := &AssignmentResult{}
	assignments := make(map[string]string, len(customerIDs))
	for _, customerID := range customerIDs {
		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: customer with ID '%s'", ErrCustomerNotFound, customerID)
			}
			return nil, fmt.Errorf("failed to get customer '%s': %w", customerID, err)
		}

		if customer.AssignedTo == staff.UID {
			assignments[customerID] = ""
			result.Unassigned = append(result.Unassigned, customerID)
		} else {
			assignments[customerID] = staff.UID
			result.Assigned = append(result.Assigned, customerID)
		}
	}

	if err := s.customerRepo.SetAssignments(ctx, assignments); err != nil {
		return nil, fmt.Errorf("failed to commit assignment toggle: %w", err)
	}

	s.logger.Info("Toggled customer assignments",
		zap.String("staffUid", staff.UID),
		zap.Int("assigned", len(result.Assigned)),
		zap.Int("unassigned", len(result.Unassigned)))
	return result, nil
}
