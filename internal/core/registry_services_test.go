package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCustomerService_CreateAndUpdate(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo, zap.NewNop())

	customer, err := svc.CreateCustomer(context.Background(), models.CreateCustomerRequest{
		Name:         "Asif",
		ConnectionNo: "WC-0042",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, models.CustomerStatusActive, customer.Status)
	assert.Equal(t, "", customer.AssignedTo)

	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, models.UpdateCustomerRequest{
		Phone: strPtr("0300-1234567"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0300-1234567", updated.Phone)
	assert.Equal(t, "Asif", updated.Name)
}

func TestCustomerService_ListByAssignee(t *testing.T) {
	repo := newFakeCustomerRepo(
		&models.Customer{ID: "c1", AssignedTo: "uid-1"},
		&models.Customer{ID: "c2", AssignedTo: "uid-2"},
		&models.Customer{ID: "c3", AssignedTo: "uid-1"},
		&models.Customer{ID: "c4"},
	)
	svc := NewCustomerService(repo, zap.NewNop())

	customers, err := svc.ListCustomersByAssignee(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, customers, 2)
	for _, customer := range customers {
		assert.Equal(t, "uid-1", customer.AssignedTo)
	}
}

func TestCustomerService_UnknownCustomer(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo(), zap.NewNop())

	_, err := svc.GetCustomerByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	err = svc.DeleteCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestStaffService_CreateRejectsDuplicateUID(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(repo, zap.NewNop())

	staff, err := svc.CreateStaff(context.Background(), models.CreateStaffRequest{
		UID:   "uid-1",
		Name:  "Kamran",
		Email: "kamran@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StaffStatusActive, staff.Status)

	_, err = svc.CreateStaff(context.Background(), models.CreateStaffRequest{
		UID:   "uid-1",
		Name:  "Other",
		Email: "other@example.com",
	})
	assert.ErrorIs(t, err, ErrStaffUIDTaken)
}

func TestStaffService_UpdateKeepsUID(t *testing.T) {
	repo := newFakeStaffRepo(&models.Staff{ID: "s1", UID: "uid-1", Name: "Kamran", Status: models.StaffStatusActive})
	svc := NewStaffService(repo, zap.NewNop())

	updated, err := svc.UpdateStaff(context.Background(), "s1", models.UpdateStaffRequest{
		Status: strPtr(models.StaffStatusInactive),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StaffStatusInactive, updated.Status)
	assert.Equal(t, "uid-1", updated.UID)
}

func TestStaffService_GetByEmail(t *testing.T) {
	repo := newFakeStaffRepo(&models.Staff{ID: "s1", UID: "uid-1", Email: "kamran@example.com"})
	svc := NewStaffService(repo, zap.NewNop())

	staff, err := svc.GetStaffByEmail(context.Background(), "kamran@example.com")
	require.NoError(t, err)
	assert.Equal(t, "s1", staff.ID)

	_, err = svc.GetStaffByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
