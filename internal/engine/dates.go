package engine

import "time"

// AddMonths advances d by the given number of calendar months, preserving the
// day of month where the target month has that day and clamping to the last
// valid day otherwise (Jan 31 + 1 month = Feb 28/29).
func AddMonths(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	last := lastDayOfMonth(firstOfTarget)
	if day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, d.Location())
}

// WholeMonthsBetween returns the number of whole calendar months elapsed from
// "from" to "to", day-of-month aware: a partial month does not count. Returns
// a negative value when "to" precedes "from".
func WholeMonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return -WholeMonthsBetween(to, from)
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	if months == 0 {
		return 0
	}
	// The last month only counts once its anchor day has been reached.
	// Clamp the anchor for short target months so e.g. Jan 31 -> Feb 28
	// still counts as one month.
	anchor := from.Day()
	if last := lastDayOfMonth(to); anchor > last {
		anchor = last
	}
	if to.Day() < anchor {
		months--
	}
	return months
}

// EffectiveDate computes the date a newly calculated rent legally takes
// effect: the reference date plus the configured minimum interval. It is
// informational metadata and does not gate whether a calculation may run.
func EffectiveDate(minimumIntervalMonths int, contractDate time.Time, lastAdjustmentDate *time.Time) time.Time {
	return AddMonths(referenceDate(contractDate, lastAdjustmentDate), minimumIntervalMonths)
}

func referenceDate(contractDate time.Time, lastAdjustmentDate *time.Time) time.Time {
	if lastAdjustmentDate != nil {
		return *lastAdjustmentDate
	}
	return contractDate
}

func lastDayOfMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}
