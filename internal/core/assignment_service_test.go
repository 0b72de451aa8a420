package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/db"
	"waterbill-backend-go/internal/models"
)

type fakeStaffRepo struct {
	staff map[string]*models.Staff
}

func newFakeStaffRepo(members ...*models.Staff) *fakeStaffRepo {
	r := &fakeStaffRepo{staff: make(map[string]*models.Staff)}
	for _, member := range members {
		r.staff[member.ID] = member
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *models.Staff) (string, error) {
	id := fmt.Sprintf("staff-%d", len(r.staff)+1)
	staff.ID = id
	r.staff[id] = staff
	return id, nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, staffID string) (*models.Staff, error) {
	staff, ok := r.staff[staffID]
	if !ok {
		return nil, fmt.Errorf("staff '%s': %w", staffID, db.ErrNotFound)
	}
	copied := *staff
	return &copied, nil
}

func (r *fakeStaffRepo) GetByUID(_ context.Context, uid string) (*models.Staff, error) {
	for _, staff := range r.staff {
		if staff.UID == uid {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("staff with uid '%s': %w", uid, db.ErrNotFound)
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*models.Staff, error) {
	for _, staff := range r.staff {
		if strings.EqualFold(staff.Email, email) {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("staff with email '%s': %w", email, db.ErrNotFound)
}

func (r *fakeStaffRepo) List(_ context.Context) ([]*models.Staff, error) {
	var out []*models.Staff
	for _, staff := range r.staff {
		out = append(out, staff)
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *models.Staff) error {
	if _, ok := r.staff[staff.ID]; !ok {
		return fmt.Errorf("staff '%s': %w", staff.ID, db.ErrNotFound)
	}
	r.staff[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, staffID string) error {
	if _, ok := r.staff[staffID]; !ok {
		return fmt.Errorf("staff '%s': %w", staffID, db.ErrNotFound)
	}
	delete(r.staff, staffID)
	return nil
}

func TestToggleAssignment_AssignsAndUnassigns(t *testing.T) {
	staffRepo := newFakeStaffRepo(&models.Staff{ID: "s1", UID: "uid-1", Name: "Kamran"})
	customerRepo := newFakeCustomerRepo(
		&models.Customer{ID: "c1"},                         // unassigned
		&models.Customer{ID: "c2", AssignedTo: "uid-1"},    // mine already
		&models.Customer{ID: "c3", AssignedTo: "uid-other"}, // someone else's
	)
	svc := NewAssignmentService(customerRepo, staffRepo, zap.NewNop())

	result, err := svc.ToggleAssignment(context.Background(), "uid-1", []string{"c1", "c2", "c3"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"c1", "c3"}, result.Assigned)
	assert.ElementsMatch(t, []string{"c2"}, result.Unassigned)
	assert.Equal(t, "uid-1", customerRepo.customers["c1"].AssignedTo)
	assert.Equal(t, "", customerRepo.customers["c2"].AssignedTo)
	// Overwrite, not error, when assigned elsewhere.
	assert.Equal(t, "uid-1", customerRepo.customers["c3"].AssignedTo)
}

func TestToggleAssignment_TwiceIsIdentity(t *testing.T) {
	staffRepo := newFakeStaffRepo(&models.Staff{ID: "s1", UID: "uid-1"})
	customerRepo := newFakeCustomerRepo(&models.Customer{ID: "c1"})
	svc := NewAssignmentService(customerRepo, staffRepo, zap.NewNop())

	_, err := svc.ToggleAssignment(context.Background(), "uid-1", []string{"c1"})
	require.NoError(t, err)
	require.Equal(t, "uid-1", customerRepo.customers["c1"].AssignedTo)

	_, err = svc.ToggleAssignment(context.Background(), "uid-1", []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, "", customerRepo.customers["c1"].AssignedTo)
}

func TestToggleAssignment_UnknownStaff(t *testing.T) {
	customerRepo := newFakeCustomerRepo(&models.Customer{ID: "c1"})
	svc := NewAssignmentService(customerRepo, newFakeStaffRepo(), zap.NewNop())

	_, err := svc.ToggleAssignment(context.Background(), "uid-missing", []string{"c1"})
	assert.ErrorIs(t, err, ErrStaffNotFound)
	assert.Equal(t, "", customerRepo.customers["c1"].AssignedTo)
}

func TestToggleAssignment_UnknownCustomerFailsWholeBatch(t *testing.T) {
	staffRepo := newFakeStaffRepo(&models.Staff{ID: "s1", UID: "uid-1"})
	customerRepo := newFakeCustomerRepo(&models.Customer{ID: "c1"})
	svc := NewAssignmentService(customerRepo, staffRepo, zap.NewNop())

	_, err := svc.ToggleAssignment(context.Background(), "uid-1", []string{"c1", "c-missing"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	// Nothing written for the valid customer either.
	assert.Equal(t, "", customerRepo.customers["c1"].AssignedTo)
}

func TestToggleAssignment_EmptySelection(t *testing.T) {
	staffRepo := newFakeStaffRepo(&models.Staff{ID: "s1", UID: "uid-1"})
	svc := NewAssignmentService(newFakeCustomerRepo(), staffRepo, zap.NewNop())

	_, err := svc.ToggleAssignment(context.Background(), "uid-1", nil)
	assert.ErrorIs(t, err, ErrNoCustomersSelected)
}
