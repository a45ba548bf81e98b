package util

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date as ISO YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current UTC date with no time component.
func Today() time.Time {
	now := time.Now().UTC()
	return Date(now.Date())
}

// Date builds a UTC calendar date with no time component.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthClamped advances a date by one calendar month, clamping the
// day-of-month to the shorter month's last day (Jan 31 -> Feb 28/29).
// time.Time.AddDate normalizes overflow into the following month instead,
// which is wrong for billing-style schedules.
func AddMonthClamped(date time.Time) time.Time {
	year, month, day := date.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return Date(year, month, day)
}

// AddYearClamped advances a date by one calendar year, clamping Feb 29 to
// Feb 28 on non-leap years.
func AddYearClamped(date time.Time) time.Time {
	year, month, day := date.Date()
	year++
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return Date(year, month, day)
}

// MonthBounds returns the inclusive [start, end] range of the fiscal month
// identified by year/month. firstDay anchors the boundary: the month starts
// on that day-of-month (clamped to the month's length) and ends the day
// before the next anchor.
func MonthBounds(year int, month time.Month, firstDay int) (time.Time, time.Time) {
	if firstDay < 1 {
		firstDay = 1
	}
	day := firstDay
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	start := Date(year, month, day)

	nextYear, nextMonth := year, month+1
	if nextMonth > time.December {
		nextMonth = time.January
		nextYear++
	}
	nextDay := firstDay
	if last := LastDayOfMonth(nextYear, nextMonth); nextDay > last {
		nextDay = last
	}
	end := Date(nextYear, nextMonth, nextDay).AddDate(0, 0, -1)
	return start, end
}
