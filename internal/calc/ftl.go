package calc

import (
	"fmt"
	"strings"
	"time"
)

// TimeFrame bounds aggregate queries against the logbook.
type TimeFrame int

const (
	AllTime TimeFrame = iota
	CalendarYear
	Rolling12Months
	Rolling28Days
)

var timeFrameNames = map[TimeFrame]string{
	AllTime:         "all_time",
	CalendarYear:    "calendar_year",
	Rolling12Months: "rolling_12_months",
	Rolling28Days:   "rolling_28_days",
}

func (tf TimeFrame) String() string {
	if name, ok := timeFrameNames[tf]; ok {
		return name
	}
	return "unknown"
}

func ParseTimeFrame(s string) (TimeFrame, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for tf, name := range timeFrameNames {
		if name == s {
			return tf, nil
		}
	}
	return AllTime, fmt.Errorf("unknown time frame %q", s)
}

// Window returns the inclusive date range covered by tf for the given day.
// Dates are UTC midnights; AllTime is unbounded on both ends.
func (tf TimeFrame) Window(today time.Time) (start, end time.Time) {
	today = StartOfDay(today)

	switch tf {
	case CalendarYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today
	case Rolling12Months:
		return today.AddDate(0, 0, -365), today
	case Rolling28Days:
		return today.AddDate(0, 0, -28), today
	default:
		return time.Time{}, time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

// FTL limits in minutes.
const (
	FTLLimit28Days       = 100 * 60
	FTLLimit12Months     = 1000 * 60
	FTLLimitCalendarYear = 900 * 60
)

// FTLLimit returns the flight time limitation for a time frame, 0 when none applies.
func FTLLimit(tf TimeFrame) int {
	switch tf {
	case Rolling28Days:
		return FTLLimit28Days
	case Rolling12Months:
		return FTLLimit12Months
	case CalendarYear:
		return FTLLimitCalendarYear
	default:
		return 0
	}
}

// FTLLevel grades accrued flight time against a limit.
type FTLLevel string

const (
	FTLLevelOK       FTLLevel = "OK"
	FTLLevelWarning  FTLLevel = "WARNING"
	FTLLevelExceeded FTLLevel = "EXCEEDED"
)

// ClassifyFTL returns EXCEEDED at or above the limit and WARNING at or above
// warningThreshold times the limit.
func ClassifyFTL(accruedMinutes, limitMinutes int, warningThreshold float64) FTLLevel {
	if limitMinutes <= 0 {
		return FTLLevelOK
	}
	switch {
	case accruedMinutes >= limitMinutes:
		return FTLLevelExceeded
	case float64(accruedMinutes) >= float64(limitMinutes)*warningThreshold:
		return FTLLevelWarning
	default:
		return FTLLevelOK
	}
}

// DateLayout is the ISO date format used for flight and expiry dates.
const DateLayout = "2006-01-02"

// StartOfDay truncates t to midnight UTC of its UTC date.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
