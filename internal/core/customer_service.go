package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"waterbill-backend-go/internal/db"
	"waterbill-backend-go/internal/models"
)

// customerService implements the CustomerService interface.
type customerService struct {
	customerRepo db.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService instance.
func NewCustomerService(customerRepo db.CustomerRepository, logger *zap.Logger) CustomerService {
	if customerRepo == nil {
		panic("CustomerService requires a non-nil CustomerRepository")
	}
	if logger == nil {
		panic("CustomerService requires a non-nil zap.Logger instance")
	}
	return &customerService{customerRepo: customerRepo, logger: logger}
}

// CreateCustomer registers a new customer. New customers start active and
// unassigned.
func (s *customerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Name:         req.Name,
		CNIC:         req.CNIC,
		Phone:        req.Phone,
		Address:      req.Address,
		ConnectionNo: req.ConnectionNo,
		Status:       models.CustomerStatusActive,
	}

	customerID, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	customer.ID = customerID

	s.logger.Info("Created customer", zap.String("customerId", customerID), zap.String("connectionNo", req.ConnectionNo))
	return customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer with ID '%s'", ErrCustomerNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to get customer '%s': %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) ListCustomersByAssignee(ctx context.Context, staffUID string) ([]*models.Customer, error) {
	customers, err := s.customerRepo.ListByAssignee(ctx, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers for staff UID '%s': %w", staffUID, err)
	}
	return customers, nil
}

// UpdateCustomer applies the provided profile fields. Assignment is not
// editable here; only the assignment toggle writes it.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.CNIC != nil {
		customer.CNIC = *req.CNIC
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.ConnectionNo != nil {
		customer.ConnectionNo = *req.ConnectionNo
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer '%s': %w", customerID, err)
	}

	s.logger.Info("Updated customer", zap.String("customerId", customerID))
	return customer, nil
}

// DeleteCustomer removes a customer. Their bills are kept for the books.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: customer with ID '%s'", ErrCustomerNotFound, customerID)
		}
		return fmt.Errorf("failed to delete customer '%s': %w", customerID, err)
	}
	s.logger.Info("Deleted customer", zap.String("customerId", customerID))
	return nil
}
