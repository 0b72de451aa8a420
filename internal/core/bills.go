package core

import (
	"fmt"
	"time"

	"waterbill-backend-go/internal/models"
)

// NextBillStatus returns the status one step further along the collection
// cycle: paid -> not paid -> pending -> paid. Any unrecognized stored value
// rotates to paid, which keeps legacy documents correctable from the UI.
func NextBillStatus(current string) string {
	switch current {
	case models.BillStatusPaid:
		return models.BillStatusNotPaid
	case models.BillStatusNotPaid:
		return models.BillStatusPending
	case models.BillStatusPending:
		return models.BillStatusPaid
	default:
		return models.BillStatusPaid
	}
}

// MonthKey renders the calendar-month bucket key for a bill date.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SameMonth reports whether two instants fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// BuildMonthlyBills computes the bills a generation run at instant now should
// create: one pending bill at the fixed price for every customer without a
// bill dated inside now's calendar month. Customers already billed this month
// are skipped, which makes repeated runs within a month no-ops. The returned
// bills are not yet persisted and carry no IDs.
func BuildMonthlyBills(customers []*models.Customer, monthBills []*models.Bill, fixedPrice float64, now time.Time) []*models.Bill {
	billed := make(map[string]bool, len(monthBills))
	for _, bill := range monthBills {
		if SameMonth(bill.BillDate, now) {
			billed[bill.CustomerID] = true
		}
	}

	var bills []*models.Bill
	for _, customer := range customers {
		if billed[customer.ID] {
			continue
		}
		bills = append(bills, &models.Bill{
			CustomerID: customer.ID,
			Amount:     fixedPrice,
			Status:     models.BillStatusPending,
			BillDate:   now,
			Notes:      fmt.Sprintf("Auto-generated monthly bill for %s", now.Format("January 2006")),
		})
	}
	return bills
}
