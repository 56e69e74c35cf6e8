package utils

import "time"

const DateLayout = "2006-01-02"

// Korea time location (KST, +09:00)
var kstLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*3600)
}()

func ParseDateKST(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, kstLoc)
}

// DayCount returns the inclusive number of days between start and end,
// so a weekend trip 2026-03-01..2026-03-02 counts as 2 days.
func DayCount(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// ExpandDates returns every date of the trip formatted as "2006-01-02",
// one entry per day, start through end inclusive.
func ExpandDates(start time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

func FormatRFC3339KST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(kstLoc).Format(time.RFC3339)
}

func FromUnixSecondsKST(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(kstLoc)
}
