package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/models"
)

// fakeBillingService implements core.BillingService; only the two methods the
// scheduler touches do anything.
type fakeBillingService struct {
	settings      *models.Settings
	settingsErr   error
	generateErr   error
	generateCalls int
}

func (f *fakeBillingService) GenerateMonthlyBills(_ context.Context) (int, error) {
	f.generateCalls++
	if f.generateErr != nil {
		return 0, f.generateErr
	}
	return 3, nil
}

func (f *fakeBillingService) GetSettings(_ context.Context) (*models.Settings, error) {
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakeBillingService) ListBills(_ context.Context, _, _ string) ([]*models.Bill, error) {
	return nil, nil
}

func (f *fakeBillingService) ChangeBillStatus(_ context.Context, _ string) (*models.Bill, error) {
	return nil, nil
}

func (f *fakeBillingService) DeleteBill(_ context.Context, _ string) error { return nil }

func (f *fakeBillingService) DeleteBillsForMonth(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (f *fakeBillingService) UpdateFixedPrice(_ context.Context, _ float64) (*models.Settings, error) {
	return nil, nil
}

func (f *fakeBillingService) ToggleAutoGeneration(_ context.Context) (*models.Settings, error) {
	return nil, nil
}

func TestRun_SkipsWhenAutoGenerationDisabled(t *testing.T) {
	billing := &fakeBillingService{settings: &models.Settings{AutoBillGeneration: false}}
	s, err := New("0 0 1 * *", billing, zap.NewNop())
	require.NoError(t, err)

	s.run()
	assert.Equal(t, 0, billing.generateCalls)
}

func TestRun_GeneratesWhenEnabled(t *testing.T) {
	billing := &fakeBillingService{settings: &models.Settings{AutoBillGeneration: true}}
	s, err := New("0 0 1 * *", billing, zap.NewNop())
	require.NoError(t, err)

	s.run()
	assert.Equal(t, 1, billing.generateCalls)
}

func TestRun_SettingsErrorSkipsGeneration(t *testing.T) {
	billing := &fakeBillingService{settingsErr: errors.New("store unavailable")}
	s, err := New("0 0 1 * *", billing, zap.NewNop())
	require.NoError(t, err)

	s.run()
	assert.Equal(t, 0, billing.generateCalls)
}

func TestRun_GenerationErrorIsSwallowed(t *testing.T) {
	billing := &fakeBillingService{
		settings:    &models.Settings{AutoBillGeneration: true},
		generateErr: errors.New("batch commit failed"),
	}
	s, err := New("0 0 1 * *", billing, zap.NewNop())
	require.NoError(t, err)

	// Must not panic; the next tick gets another chance.
	s.run()
	assert.Equal(t, 1, billing.generateCalls)
}

func TestNew_RejectsInvalidCronExpression(t *testing.T) {
	_, err := New("not a cron spec", &fakeBillingService{}, zap.NewNop())
	assert.Error(t, err)
}
