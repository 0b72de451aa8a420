package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// reportService implements the ReportService interface on top of the live
// collection snapshots. All figures are recomputed per call from the current
// snapshot state; nothing is cached between calls.
type reportService struct {
	source SnapshotSource
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService instance.
func NewReportService(source SnapshotSource, logger *zap.Logger) ReportService {
	if source == nil {
		panic("ReportService requires a non-nil SnapshotSource")
	}
	if logger == nil {
		panic("ReportService requires a non-nil zap.Logger instance")
	}
	return &reportService{source: source, logger: logger, now: time.Now}
}

// Overview returns the admin dashboard headline figures.
func (s *reportService) Overview(_ context.Context) *Overview {
	return BuildOverview(s.source.Customers(), s.source.Staff(), s.source.Bills())
}

// StaffSummaries returns workload and revenue figures for every collector.
func (s *reportService) StaffSummaries(_ context.Context) []StaffSummary {
	return BuildStaffSummaries(s.source.Staff(), s.source.Customers(), s.source.Bills(), s.now())
}

// StaffSummaryByEmail resolves a signed-in collector to their summary. Email
// comparison is case-insensitive because identity providers normalize case
// inconsistently.
func (s *reportService) StaffSummaryByEmail(_ context.Context, email string) (*StaffSummary, error) {
	for _, member := range s.source.Staff() {
		if strings.EqualFold(member.Email, email) {
			summary := BuildStaffSummary(member, s.source.Customers(), s.source.Bills(), s.now())
			return &summary, nil
		}
	}
	return nil, fmt.Errorf("%w: staff with email '%s'", ErrStaffNotFound, email)
}

// CustomerStatement returns one customer's full billing history.
func (s *reportService) CustomerStatement(_ context.Context, customerID string) (*CustomerStatement, error) {
	for _, customer := range s.source.Customers() {
		if customer.ID == customerID {
			return BuildCustomerStatement(customer, s.source.Bills(), s.now()), nil
		}
	}
	return nil, fmt.Errorf("%w: customer with ID '%s'", ErrCustomerNotFound, customerID)
}
