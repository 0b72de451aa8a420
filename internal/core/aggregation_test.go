package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterbill-backend-go/internal/models"
)

func billOn(id, customerID, status string, amount float64, billDate time.Time) *models.Bill {
	return &models.Bill{ID: id, CustomerID: customerID, Status: status, Amount: amount, BillDate: billDate}
}

func TestPendingAndPaidTotals(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	bills := []*models.Bill{
		billOn("b1", "c1", models.BillStatusPending, 500, now),
		billOn("b2", "c2", models.BillStatusNotPaid, 300, now),
		billOn("b3", "c3", models.BillStatusPaid, 700, now),
	}

	assert.Equal(t, 800.0, PendingTotal(bills))
	assert.Equal(t, 700.0, PaidTotal(bills))
}

func TestTotals_UnrecognizedStatusCountsNowhere(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	bills := []*models.Bill{
		billOn("b1", "c1", "overdue", 500, now),
		billOn("b2", "c2", models.BillStatusPaid, 200, now),
	}

	assert.Equal(t, 0.0, PendingTotal(bills))
	assert.Equal(t, 200.0, PaidTotal(bills))
}

func TestTotals_EmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, PendingTotal(nil))
	assert.Equal(t, 0.0, PaidTotal(nil))
}

// Toggling one pending bill to paid moves its amount from one total to the
// other; the combined recognized sum is conserved.
func TestTotals_ConservedAcrossStatusRotation(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	bills := []*models.Bill{
		billOn("b1", "c1", models.BillStatusPending, 500, now),
		billOn("b2", "c2", models.BillStatusPaid, 700, now),
	}
	before := PendingTotal(bills) + PaidTotal(bills)

	bills[0].Status = NextBillStatus(bills[0].Status)
	require.Equal(t, models.BillStatusPaid, bills[0].Status)

	assert.Equal(t, before, PendingTotal(bills)+PaidTotal(bills))
	assert.Equal(t, 0.0, PendingTotal(bills))
	assert.Equal(t, 1200.0, PaidTotal(bills))
}

func TestBuildStaffSummary(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	staff := &models.Staff{ID: "s1", UID: "uid-1", Name: "Kamran", Email: "kamran@example.com", Status: models.StaffStatusActive}
	customers := []*models.Customer{
		{ID: "c1", AssignedTo: "uid-1"},
		{ID: "c2", AssignedTo: "uid-1"},
		{ID: "c3", AssignedTo: "uid-2"},
		{ID: "c4"},
	}
	bills := []*models.Bill{
		billOn("b1", "c1", models.BillStatusPaid, 1000, now),
		billOn("b2", "c2", models.BillStatusPaid, 1000, lastMonth),
		billOn("b3", "c2", models.BillStatusPending, 1000, now),
		billOn("b4", "c3", models.BillStatusPaid, 1000, now), // someone else's customer
	}

	summary := BuildStaffSummary(staff, customers, bills, now)

	assert.Equal(t, "s1", summary.StaffID)
	assert.Equal(t, "uid-1", summary.UID)
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, 1000.0, summary.CurrentRevenue)
	assert.Equal(t, 1000.0, summary.PendingAmount)
	assert.Equal(t, map[string]float64{"2025-06": 1000, "2025-05": 1000}, summary.MonthlyHistory)
}

// Payment date plays no part in revenue bucketing; a May bill collected in
// June still counts toward May.
func TestBuildStaffSummary_BucketsByBillDateNotPaymentDate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	paidInJune := now
	staff := &models.Staff{ID: "s1", UID: "uid-1", Name: "Kamran"}
	customers := []*models.Customer{{ID: "c1", AssignedTo: "uid-1"}}
	mayBill := billOn("b1", "c1", models.BillStatusPaid, 800, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
	mayBill.PaymentDate = &paidInJune

	summary := BuildStaffSummary(staff, customers, []*models.Bill{mayBill}, now)

	assert.Equal(t, 0.0, summary.CurrentRevenue)
	assert.Equal(t, map[string]float64{"2025-05": 800}, summary.MonthlyHistory)
}

func TestBuildStaffSummary_DanglingUIDBelongsToNobody(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	staff := &models.Staff{ID: "s1", UID: "uid-1", Name: "Kamran"}
	customers := []*models.Customer{{ID: "c1", AssignedTo: "uid-gone"}}

	summary := BuildStaffSummary(staff, customers, nil, now)
	assert.Equal(t, 0, summary.CustomerCount)
}

func TestBuildStaffSummaries_SortedByName(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	staff := []*models.Staff{
		{ID: "s1", UID: "u1", Name: "Zara"},
		{ID: "s2", UID: "u2", Name: "Ali"},
	}

	summaries := BuildStaffSummaries(staff, nil, nil, now)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Ali", summaries[0].Name)
	assert.Equal(t, "Zara", summaries[1].Name)
}

func TestBuildOverview(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	customers := []*models.Customer{{ID: "c1"}, {ID: "c2"}}
	staff := []*models.Staff{{ID: "s1", UID: "u1"}}
	bills := []*models.Bill{
		billOn("b1", "c1", models.BillStatusPending, 500, now),
		billOn("b2", "c2", models.BillStatusPaid, 700, now),
	}

	overview := BuildOverview(customers, staff, bills)

	assert.Equal(t, 2, overview.CustomerCount)
	assert.Equal(t, 1, overview.StaffCount)
	assert.Equal(t, 2, overview.BillCount)
	assert.Equal(t, 500.0, overview.PendingTotal)
	assert.Equal(t, 700.0, overview.PaidTotal)
}

func TestCustomerStandingForMonth(t *testing.T) {
	month := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	otherMonth := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no bill in month", func(t *testing.T) {
		bills := []*models.Bill{billOn("b1", "c1", models.BillStatusPaid, 1000, otherMonth)}
		assert.Equal(t, StandingNoBill, CustomerStandingForMonth("c1", bills, month))
	})

	t.Run("pending bill", func(t *testing.T) {
		bills := []*models.Bill{billOn("b1", "c1", models.BillStatusPending, 1000, month)}
		assert.Equal(t, StandingPending, CustomerStandingForMonth("c1", bills, month))
	})

	t.Run("not paid counts as pending", func(t *testing.T) {
		bills := []*models.Bill{billOn("b1", "c1", models.BillStatusNotPaid, 1000, month)}
		assert.Equal(t, StandingPending, CustomerStandingForMonth("c1", bills, month))
	})

	t.Run("paid wins over open bills", func(t *testing.T) {
		bills := []*models.Bill{
			billOn("b1", "c1", models.BillStatusPending, 1000, month),
			billOn("b2", "c1", models.BillStatusPaid, 1000, month.AddDate(0, 0, 5)),
		}
		assert.Equal(t, StandingPaid, CustomerStandingForMonth("c1", bills, month))
	})

	t.Run("other customers ignored", func(t *testing.T) {
		bills := []*models.Bill{billOn("b1", "c2", models.BillStatusPaid, 1000, month)}
		assert.Equal(t, StandingNoBill, CustomerStandingForMonth("c1", bills, month))
	})
}

func TestBuildCustomerStatement(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	customer := &models.Customer{ID: "c1", Name: "Asif"}
	bills := []*models.Bill{
		billOn("b1", "c1", models.BillStatusPaid, 1000, now.AddDate(0, -2, 0)),
		billOn("b2", "c1", models.BillStatusPaid, 1000, now.AddDate(0, -1, 0)),
		billOn("b3", "c1", models.BillStatusPending, 1000, now),
		billOn("b4", "c2", models.BillStatusPending, 1000, now),
	}

	statement := BuildCustomerStatement(customer, bills, now)

	require.Len(t, statement.Bills, 3)
	assert.Equal(t, "b3", statement.Bills[0].ID) // newest first
	assert.Equal(t, "b2", statement.Bills[1].ID)
	assert.Equal(t, "b1", statement.Bills[2].ID)
	assert.Equal(t, 2000.0, statement.TotalPaid)
	assert.Equal(t, 1000.0, statement.TotalPending)
	assert.Equal(t, StandingPending, statement.CurrentStanding)
}
