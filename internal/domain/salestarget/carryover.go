package salestarget

import "salesdash/internal/domain/period"

// CarryOverBefore walks the given year's months chronologically from
// Farvardin up to (excluding) month and accumulates the unmet target.
// Overachievement drives the figure negative, reducing the next month's
// effective target. Carry-over never crosses a year boundary: every year
// starts at zero.
func CarryOverBefore(entries []Entry, year int, month string) float64 {
	idx := period.MonthIndex(month)
	if idx <= 0 {
		return 0
	}

	byMonth := indexByMonth(entries, year)
	carry := 0.0
	for i := 0; i < idx; i++ {
		var target, actual float64
		if e, ok := byMonth[period.Months[i]]; ok {
			target = e.Target
			if e.Actual != nil {
				actual = *e.Actual
			}
		}
		carry = (target + carry) - actual
	}
	return carry
}

// StatusFor computes the full carry-over view of one month.
func StatusFor(entries []Entry, year int, month string) MonthStatus {
	status := MonthStatus{Month: month, CarryOver: CarryOverBefore(entries, year, month)}

	var actual float64
	if e, ok := indexByMonth(entries, year)[month]; ok {
		status.Target = e.Target
		status.Actual = e.Actual
		if e.Actual != nil {
			actual = *e.Actual
		}
	}

	status.TotalTarget = status.Target + status.CarryOver
	status.Shortfall = status.TotalTarget - actual
	if status.TotalTarget > 0 {
		status.AchievementPct = actual / status.TotalTarget * 100
	}
	return status
}

// YearStatuses computes every month of the year in canonical order for the
// targeting table.
func YearStatuses(entries []Entry, year int) []MonthStatus {
	statuses := make([]MonthStatus, 0, len(period.Months))
	for _, month := range period.Months {
		statuses = append(statuses, StatusFor(entries, year, month))
	}
	return statuses
}

func indexByMonth(entries []Entry, year int) map[string]Entry {
	byMonth := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.Year == year {
			byMonth[e.Month] = e
		}
	}
	return byMonth
}
