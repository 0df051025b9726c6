package ledger

import "time"

// Filters narrow a RecordSet. Each one is a pure set intersection over the
// full input, so filters commute and can be chained in any order.

// FilterByDateWindow retains records whose operation timestamp lies in
// [start, end], inclusive on both ends.
func (rs RecordSet) FilterByDateWindow(start, end time.Time) RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.OperationTime.Before(start) || r.OperationTime.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByMonthToDate retains records from the first instant of ref's
// month up to ref itself.
func (rs RecordSet) FilterByMonthToDate(ref time.Time) RecordSet {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return rs.FilterByDateWindow(start, ref)
}

// FilterByTrailingMonths retains records in the window ending at ref and
// starting the given number of calendar months earlier, truncated to
// midnight.
func (rs RecordSet) FilterByTrailingMonths(ref time.Time, months int) RecordSet {
	start := midnight(shiftMonths(ref, -months))
	return rs.FilterByDateWindow(start, ref)
}

// FilterByStatusAndSign retains records with the given status and, when
// expensesOnly is set, a negative payment amount.
func (rs RecordSet) FilterByStatusAndSign(status Status, expensesOnly bool) RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.Status != status {
			continue
		}
		if expensesOnly && !r.IsExpense() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterExpenses retains records with a negative payment amount,
// regardless of status.
func (rs RecordSet) FilterExpenses() RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.IsExpense() {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCardPresence retains card records when requireCard is set, and
// cash/transfer records otherwise.
func (rs RecordSet) FilterByCardPresence(requireCard bool) RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.HasCard() == requireCard {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCategory retains records with an exact, case-sensitive category
// match.
func (rs RecordSet) FilterByCategory(category string) RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
