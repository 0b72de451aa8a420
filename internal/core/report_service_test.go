package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/models"
)

type fakeSnapshotSource struct {
	customers []*models.Customer
	staff     []*models.Staff
	bills     []*models.Bill
}

func (s *fakeSnapshotSource) Customers() []*models.Customer { return s.customers }
func (s *fakeSnapshotSource) Staff() []*models.Staff        { return s.staff }
func (s *fakeSnapshotSource) Bills() []*models.Bill         { return s.bills }

func newReportServiceForTest(source *fakeSnapshotSource, now time.Time) *reportService {
	svc := NewReportService(source, zap.NewNop()).(*reportService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestReportService_Overview(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	source := &fakeSnapshotSource{
		customers: []*models.Customer{{ID: "c1"}},
		staff:     []*models.Staff{{ID: "s1", UID: "u1"}},
		bills: []*models.Bill{
			billOn("b1", "c1", models.BillStatusNotPaid, 400, now),
			billOn("b2", "c1", models.BillStatusPaid, 600, now),
		},
	}
	svc := newReportServiceForTest(source, now)

	overview := svc.Overview(context.Background())
	assert.Equal(t, 400.0, overview.PendingTotal)
	assert.Equal(t, 600.0, overview.PaidTotal)
	assert.Equal(t, 1, overview.CustomerCount)
}

func TestReportService_StaffSummaryByEmail_CaseInsensitive(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	source := &fakeSnapshotSource{
		staff:     []*models.Staff{{ID: "s1", UID: "uid-1", Name: "Kamran", Email: "Kamran@Example.com"}},
		customers: []*models.Customer{{ID: "c1", AssignedTo: "uid-1"}},
	}
	svc := newReportServiceForTest(source, now)

	summary, err := svc.StaffSummaryByEmail(context.Background(), "kamran@example.com")
	require.NoError(t, err)
	assert.Equal(t, "s1", summary.StaffID)
	assert.Equal(t, 1, summary.CustomerCount)
}

func TestReportService_StaffSummaryByEmail_NotFound(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc := newReportServiceForTest(&fakeSnapshotSource{}, now)

	_, err := svc.StaffSummaryByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestReportService_CustomerStatement(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	source := &fakeSnapshotSource{
		customers: []*models.Customer{{ID: "c1", Name: "Asif"}},
		bills: []*models.Bill{
			billOn("b1", "c1", models.BillStatusPaid, 1000, now.AddDate(0, -1, 0)),
			billOn("b2", "c1", models.BillStatusPending, 1000, now),
		},
	}
	svc := newReportServiceForTest(source, now)

	statement, err := svc.CustomerStatement(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Asif", statement.Customer.Name)
	require.Len(t, statement.Bills, 2)
	assert.Equal(t, "b2", statement.Bills[0].ID)
	assert.Equal(t, StandingPending, statement.CurrentStanding)

	_, err = svc.CustomerStatement(context.Background(), "c-missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
