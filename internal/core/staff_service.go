package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"waterbill-backend-go/internal/db"
	"waterbill-backend-go/internal/models"
)

// ErrStaffUIDTaken is returned when a staff member already exists for the
// given Firebase Auth UID.
var ErrStaffUIDTaken = errors.New("staff with this UID already exists")

// staffService implements the StaffService interface.
type staffService struct {
	staffRepo db.StaffRepository
	logger    *zap.Logger
}

// NewStaffService creates a new StaffService instance.
func NewStaffService(staffRepo db.StaffRepository, logger *zap.Logger) StaffService {
	if staffRepo == nil {
		panic("StaffService requires a non-nil StaffRepository")
	}
	if logger == nil {
		panic("StaffService requires a non-nil zap.Logger instance")
	}
	return &staffService{staffRepo: staffRepo, logger: logger}
}

// CreateStaff registers a collector against an existing identity-provider
// account. One staff record per UID.
func (s *staffService) CreateStaff(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error) {
	if _, err := s.staffRepo.GetByUID(ctx, req.UID); err == nil {
		return nil, fmt.Errorf("%w: UID '%s'", ErrStaffUIDTaken, req.UID)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing staff UID '%s': %w", req.UID, err)
	}

	staff := &models.Staff{
		UID:     req.UID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		CNIC:    req.CNIC,
		Address: req.Address,
		Status:  models.StaffStatusActive,
	}

	staffID, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	staff.ID = staffID

	s.logger.Info("Created staff", zap.String("staffId", staffID), zap.String("uid", req.UID))
	return staff, nil
}

func (s *staffService) GetStaffByID(ctx context.Context, staffID string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff with ID '%s'", ErrStaffNotFound, staffID)
		}
		return nil, fmt.Errorf("failed to get staff '%s': %w", staffID, err)
	}
	return staff, nil
}

func (s *staffService) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff with email '%s'", ErrStaffNotFound, email)
		}
		return nil, fmt.Errorf("failed to get staff by email '%s': %w", email, err)
	}
	return staff, nil
}

func (s *staffService) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	staffMembers, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staffMembers, nil
}

// UpdateStaff applies the provided profile fields. The UID is immutable; a
// new identity means a new staff record.
func (s *staffService) UpdateStaff(ctx context.Context, staffID string, req models.UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.GetStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.CNIC != nil {
		staff.CNIC = *req.CNIC
	}
	if req.Address != nil {
		staff.Address = *req.Address
	}
	if req.Status != nil {
		staff.Status = *req.Status
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update staff '%s': %w", staffID, err)
	}

	s.logger.Info("Updated staff", zap.String("staffId", staffID))
	return staff, nil
}

// DeleteStaff removes a staff record. Customers still pointing at the removed
// UID aggregate as unassigned until reassigned.
func (s *staffService) DeleteStaff(ctx context.Context, staffID string) error {
	if err := s.staffRepo.Delete(ctx, staffID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: staff with ID '%s'", ErrStaffNotFound, staffID)
		}
		return fmt.Errorf("failed to delete staff '%s': %w", staffID, err)
	}
	s.logger.Info("Deleted staff", zap.String("staffId", staffID))
	return nil
}
