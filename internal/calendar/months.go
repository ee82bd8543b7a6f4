package calendar

import "time"

// AddMonths moves ref by n months, keeping the time of day. A day that does
// not exist in the target month is clamped to its last day, so Jan 31 plus
// one month is Feb 28 or 29.
func AddMonths(ref time.Time, n int) time.Time {
	y, m, d := ref.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, ref.Location())
	if last := DaysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}

// NextMonth is AddMonths(ref, 1).
func NextMonth(ref time.Time) time.Time {
	return AddMonths(ref, 1)
}

// PrevMonth is AddMonths(ref, -1).
func PrevMonth(ref time.Time) time.Time {
	return AddMonths(ref, -1)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthYearLabel renders ref as "January 2024".
func MonthYearLabel(ref time.Time) string {
	return ref.Format(DefaultLabelLayout)
}
