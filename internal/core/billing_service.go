package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"waterbill-backend-go/internal/db"
	"waterbill-backend-go/internal/models"
)

// ErrBillNotFound is returned when a bill does not exist.
var ErrBillNotFound = errors.New("bill not found")

// ErrInvalidPrice is returned when a fixed price update is not a positive
// finite number.
var ErrInvalidPrice = errors.New("fixed price must be a positive number")

// ErrInvalidStatusFilter is returned when a bill listing names a status
// outside the three recognized values.
var ErrInvalidStatusFilter = errors.New("invalid bill status filter")

// billingService implements the BillingService interface.
type billingService struct {
	billRepo     db.BillRepository
	customerRepo db.CustomerRepository
	settingsRepo db.SettingsRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewBillingService creates a new BillingService instance.
func NewBillingService(billRepo db.BillRepository, customerRepo db.CustomerRepository, settingsRepo db.SettingsRepository, logger *zap.Logger) BillingService {
	if billRepo == nil || customerRepo == nil || settingsRepo == nil {
		panic("BillingService requires non-nil repositories")
	}
	if logger == nil {
		panic("BillingService requires a non-nil zap.Logger instance")
	}
	return &billingService{
		billRepo:     billRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// GenerateMonthlyBills creates this month's pending bills for every customer
// not yet billed this month, in a single atomic batch.
func (s *billingService) GenerateMonthlyBills(ctx context.Context) (int, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return 0, err
	}

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list customers for bill generation: %w", err)
	}

	now := s.now()
	monthBills, err := s.billRepo.ListForMonth(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list this month's bills: %w", err)
	}

	bills := BuildMonthlyBills(customers, monthBills, settings.FixedPrice, now)
	if len(bills) == 0 {
		s.logger.Info("No bills to generate; all customers already billed this month",
			zap.Int("customers", len(customers)))
		return 0, nil
	}

	if err := s.billRepo.CreateBatch(ctx, bills); err != nil {
		return 0, fmt.Errorf("failed to persist generated bills: %w", err)
	}

	s.logger.Info("Generated monthly bills",
		zap.Int("created", len(bills)),
		zap.Int("customers", len(customers)),
		zap.Float64("fixedPrice", settings.FixedPrice),
		zap.String("month", MonthKey(now)))
	return len(bills), nil
}

// ListBills returns bills newest first by billDate. A customer filter narrows
// the query; a status filter is applied in memory over the result. Unknown
// status values are rejected rather than silently matching nothing.
func (s *billingService) ListBills(ctx context.Context, status, customerID string) ([]*models.Bill, error) {
	switch status {
	case "", models.BillStatusPaid, models.BillStatusPending, models.BillStatusNotPaid:
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatusFilter, status)
	}

	var bills []*models.Bill
	var err error
	if customerID != "" {
		bills, err = s.billRepo.ListByCustomer(ctx, customerID)
	} else {
		bills, err = s.billRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	filtered := make([]*models.Bill, 0, len(bills))
	for _, bill := range bills {
		if status != "" && bill.Status != status {
			continue
		}
		filtered = append(filtered, bill)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].BillDate.After(filtered[j].BillDate) })

	return filtered, nil
}

// ChangeBillStatus rotates the bill's status one step and keeps paymentDate
// coupled to it: set when entering paid, cleared when leaving.
func (s *billingService) ChangeBillStatus(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: bill with ID '%s'", ErrBillNotFound, billID)
		}
		return nil, fmt.Errorf("failed to get bill '%s': %w", billID, err)
	}

	next := NextBillStatus(bill.Status)
	var paymentDate *time.Time
	if next == models.BillStatusPaid {
		paid := s.now()
		paymentDate = &paid
	}

	if err := s.billRepo.SetStatus(ctx, billID, next, paymentDate); err != nil {
		return nil, fmt.Errorf("failed to update status of bill '%s': %w", billID, err)
	}

	s.logger.Info("Changed bill status",
		zap.String("billId", billID),
		zap.String("from", bill.Status),
		zap.String("to", next))

	bill.Status = next
	bill.PaymentDate = paymentDate
	return bill, nil
}

// DeleteBill removes a single bill.
func (s *billingService) DeleteBill(ctx context.Context, billID string) error {
	if err := s.billRepo.Delete(ctx, billID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: bill with ID '%s'", ErrBillNotFound, billID)
		}
		return fmt.Errorf("failed to delete bill '%s': %w", billID, err)
	}
	return nil
}

// DeleteBillsForMonth removes every bill dated in the given calendar month in
// one batch.
func (s *billingService) DeleteBillsForMonth(ctx context.Context, month time.Time) (int, error) {
	bills, err := s.billRepo.ListForMonth(ctx, month)
	if err != nil {
		return 0, fmt.Errorf("failed to list bills for month deletion: %w", err)
	}
	if len(bills) == 0 {
		return 0, nil
	}

	billIDs := make([]string, 0, len(bills))
	for _, bill := range bills {
		billIDs = append(billIDs, bill.ID)
	}
	if err := s.billRepo.DeleteBatch(ctx, billIDs); err != nil {
		return 0, fmt.Errorf("failed to delete bills for month: %w", err)
	}

	s.logger.Info("Deleted bills for month",
		zap.String("month", MonthKey(month)),
		zap.Int("deleted", len(billIDs)))
	return len(billIDs), nil
}

// GetSettings returns the billing settings, falling back to the defaults when
// no settings document has been written yet.
func (s *billingService) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to load billing settings: %w", err)
	}
	return settings, nil
}

// UpdateFixedPrice validates and persists a new flat monthly charge. Bills
// already issued keep their amounts.
func (s *billingService) UpdateFixedPrice(ctx context.Context, price float64) (*models.Settings, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPrice, price)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings.FixedPrice = price

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save fixed price: %w", err)
	}

	s.logger.Info("Updated fixed price", zap.Float64("fixedPrice", price))
	return settings, nil
}

// ToggleAutoGeneration flips the scheduler gate and returns the new settings.
func (s *billingService) ToggleAutoGeneration(ctx context.Context) (*models.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings.AutoBillGeneration = !settings.AutoBillGeneration

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save auto-generation flag: %w", err)
	}

	s.logger.Info("Toggled automatic bill generation", zap.Bool("enabled", settings.AutoBillGeneration))
	return settings, nil
}
