package core

import (
	"sort"
	"time"

	"waterbill-backend-go/internal/models"
)

// Bill standing values for a customer in a given month. "no bill" means no
// bill exists for that customer in that calendar month; it is absence, not a
// bill status.
const (
	StandingPaid    = "paid"
	StandingPending = "pending"
	StandingNoBill  = "no bill"
)

// Overview is the admin dashboard headline block.
type Overview struct {
	CustomerCount int     `json:"customerCount"`
	StaffCount    int     `json:"staffCount"`
	BillCount     int     `json:"billCount"`
	PendingTotal  float64 `json:"pendingTotal"`
	PaidTotal     float64 `json:"paidTotal"`
}

// StaffSummary is the per-collector workload and revenue block. Revenue
// figures bucket bills by billDate and count only bills marked paid.
type StaffSummary struct {
	StaffID        string             `json:"staffId"`
	UID            string             `json:"uid"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Status         string             `json:"status"`
	CustomerCount  int                `json:"customerCount"`
	CurrentRevenue float64            `json:"currentRevenue"`
	PendingAmount  float64            `json:"pendingAmount"`
	MonthlyHistory map[string]float64 `json:"monthlyHistory"`
}

// CustomerStatement is the full billing history view for one customer.
type CustomerStatement struct {
	Customer     *models.Customer `json:"customer"`
	Bills        []*models.Bill   `json:"bills"`
	TotalPaid    float64          `json:"totalPaid"`
	TotalPending float64          `json:"totalPending"`
	// CurrentStanding is this month's standing: paid, pending, or "no bill".
	CurrentStanding string `json:"currentStanding"`
}

// PendingTotal sums the amounts of bills awaiting collection. Both pending
// and "not paid" count as outstanding; unrecognized statuses count in no
// total.
func PendingTotal(bills []*models.Bill) float64 {
	var total float64
	for _, bill := range bills {
		if bill.Status == models.BillStatusPending || bill.Status == models.BillStatusNotPaid {
			total += bill.Amount
		}
	}
	return total
}

// PaidTotal sums the amounts of collected bills.
func PaidTotal(bills []*models.Bill) float64 {
	var total float64
	for _, bill := range bills {
		if bill.Status == models.BillStatusPaid {
			total += bill.Amount
		}
	}
	return total
}

// BuildOverview folds the three collections into the admin headline figures.
func BuildOverview(customers []*models.Customer, staff []*models.Staff, bills []*models.Bill) *Overview {
	return &Overview{
		CustomerCount: len(customers),
		StaffCount:    len(staff),
		BillCount:     len(bills),
		PendingTotal:  PendingTotal(bills),
		PaidTotal:     PaidTotal(bills),
	}
}

// BuildStaffSummary computes one collector's workload and revenue at instant
// now. Customers join on AssignedTo == staff UID; a customer pointing at a
// UID with no staff record belongs to nobody's summary. CurrentRevenue is
// paid amounts with a billDate in now's month; MonthlyHistory is paid
// amounts keyed by billDate month; PendingAmount is the collector's open
// book across all months.
func BuildStaffSummary(staff *models.Staff, customers []*models.Customer, bills []*models.Bill, now time.Time) StaffSummary {
	summary := StaffSummary{
		StaffID:        staff.ID,
		UID:            staff.UID,
		Name:           staff.Name,
		Email:          staff.Email,
		Status:         staff.Status,
		MonthlyHistory: make(map[string]float64),
	}

	mine := make(map[string]bool)
	for _, customer := range customers {
		if customer.AssignedTo != "" && customer.AssignedTo == staff.UID {
			mine[customer.ID] = true
			summary.CustomerCount++
		}
	}

	for _, bill := range bills {
		if !mine[bill.CustomerID] {
			continue
		}
		switch bill.Status {
		case models.BillStatusPaid:
			summary.MonthlyHistory[MonthKey(bill.BillDate)] += bill.Amount
			if SameMonth(bill.BillDate, now) {
				summary.CurrentRevenue += bill.Amount
			}
		case models.BillStatusPending, models.BillStatusNotPaid:
			summary.PendingAmount += bill.Amount
		}
	}

	return summary
}

// BuildStaffSummaries computes summaries for every staff member, sorted by
// name for stable output.
func BuildStaffSummaries(staff []*models.Staff, customers []*models.Customer, bills []*models.Bill, now time.Time) []StaffSummary {
	summaries := make([]StaffSummary, 0, len(staff))
	for _, member := range staff {
		summaries = append(summaries, BuildStaffSummary(member, customers, bills, now))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}

// CustomerStandingForMonth reports a customer's standing for the calendar
// month containing the given instant. A paid bill anywhere in the month wins
// over open ones.
func CustomerStandingForMonth(customerID string, bills []*models.Bill, month time.Time) string {
	standing := StandingNoBill
	for _, bill := range bills {
		if bill.CustomerID != customerID || !SameMonth(bill.BillDate, month) {
			continue
		}
		if bill.Status == models.BillStatusPaid {
			return StandingPaid
		}
		standing = StandingPending
	}
	return standing
}

// BuildCustomerStatement assembles one customer's bill history, newest first.
func BuildCustomerStatement(customer *models.Customer, bills []*models.Bill, now time.Time) *CustomerStatement {
	var owned []*models.Bill
	for _, bill := range bills {
		if bill.CustomerID == customer.ID {
			owned = append(owned, bill)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].BillDate.After(owned[j].BillDate) })

	return &CustomerStatement{
		Customer:        customer,
		Bills:           owned,
		TotalPaid:       PaidTotal(owned),
		TotalPending:    PendingTotal(owned),
		CurrentStanding: CustomerStandingForMonth(customer.ID, owned, now),
	}
}
