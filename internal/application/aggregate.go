package application

import (
	"time"

	"github.com/kevharding/stockpanel/internal/domain/model"
)

// CountByType tallies transactions per type. Empty input yields an empty,
// non-nil map. The input is never mutated.
func CountByType(records []model.Transaction) map[model.TransactionType]int {
	counts := make(map[model.TransactionType]int)
	for _, r := range records {
		counts[r.Type]++
	}
	return counts
}

// SumByType accumulates TotalPrice per transaction type. No rounding policy
// is applied beyond plain float addition; amounts carry whatever precision
// the API returned.
func SumByType(records []model.Transaction) map[model.TransactionType]float64 {
	sums := make(map[model.TransactionType]float64)
	for _, r := range records {
		sums[r.Type] += r.TotalPrice
	}
	return sums
}

// SumByDayOfMonth accumulates TotalPrice per calendar day (1..31) of each
// record's CreatedAt. The day is taken in the process's local time zone, so
// the same record can land on a different day for viewers in different
// zones. That matches the historical behavior of this panel; callers wanting
// a fixed zone should normalize CreatedAt before calling.
func SumByDayOfMonth(records []model.Transaction) map[int]float64 {
	sums := make(map[int]float64)
	for _, r := range records {
		sums[r.CreatedAt.In(time.Local).Day()] += r.TotalPrice
	}
	return sums
}

// FilterMonth returns the records whose CreatedAt falls within the given
// local-time month. Used by the dashboard to scope SumByDayOfMonth to the
// selected month/year.
func FilterMonth(records []model.Transaction, year int, month time.Month) []model.Transaction {
	filtered := make([]model.Transaction, 0, len(records))
	for _, r := range records {
		local := r.CreatedAt.In(time.Local)
		if local.Year() == year && local.Month() == month {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
