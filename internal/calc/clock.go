package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// InvalidMinutes is returned whenever a time value cannot be parsed or derived.
const InvalidMinutes ClockMinutes = -1

// ClockMinutes is a time of day or an elapsed duration expressed in whole minutes.
// Negative values are invalid.
type ClockMinutes int

// TimeFormatKind selects how ClockMinutes are read from and written to strings.
type TimeFormatKind int

const (
	// TimeFormatDefault is hh:mm.
	TimeFormatDefault TimeFormatKind = iota
	// TimeFormatDecimal is decimal hours, e.g. 1.5 for 90 minutes.
	TimeFormatDecimal
	// TimeFormatCustom uses a Go time layout supplied in TimeFormat.Layout.
	TimeFormatCustom
)

func (k TimeFormatKind) String() string {
	switch k {
	case TimeFormatDefault:
		return "default"
	case TimeFormatDecimal:
		return "decimal"
	case TimeFormatCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseTimeFormatKind parses a format name as used in query strings and config.
func ParseTimeFormatKind(s string) TimeFormatKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decimal":
		return TimeFormatDecimal
	case "custom":
		return TimeFormatCustom
	default:
		return TimeFormatDefault
	}
}

type TimeFormat struct {
	Kind   TimeFormatKind
	Layout string
}

var DefaultTimeFormat = TimeFormat{Kind: TimeFormatDefault}

var DecimalTimeFormat = TimeFormat{Kind: TimeFormatDecimal}

// NewClockMinutes builds a time of day, returning InvalidMinutes when hours or minutes are out of range.
func NewClockMinutes(hours, minutes int) ClockMinutes {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return InvalidMinutes
	}
	return ClockMinutes(hours*60 + minutes)
}

func (m ClockMinutes) IsValid() bool {
	return m >= 0
}

// IsValidTimeOfDay reports whether m can be shown as a wall clock time.
func (m ClockMinutes) IsValidTimeOfDay() bool {
	return m >= 0 && m < MinutesPerDay
}

func (m ClockMinutes) Minutes() int {
	return int(m)
}

func (m ClockMinutes) Hours() float64 {
	return float64(m) / 60
}

func (m ClockMinutes) String() string {
	return m.Format(DefaultTimeFormat)
}

// Format renders m in the requested format. Invalid values render as an empty string.
func (m ClockMinutes) Format(format TimeFormat) string {
	if !m.IsValid() {
		return ""
	}

	switch format.Kind {
	case TimeFormatDecimal:
		return strconv.FormatFloat(m.Hours(), 'f', 2, 64)
	case TimeFormatCustom:
		if format.Layout == "" || !m.IsValidTimeOfDay() {
			return ""
		}
		t := time.Date(0, time.January, 1, int(m)/60, int(m)%60, 0, 0, time.UTC)
		return t.Format(format.Layout)
	default:
		return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
	}
}

// ParseClockMinutes reads a time of day in the given format. It never fails
// loudly: unparseable input and values of 24:00 or later yield InvalidMinutes.
// Longer durations can still be rendered with Format.
func ParseClockMinutes(text string, format TimeFormat) ClockMinutes {
	text = strings.TrimSpace(text)
	if text == "" {
		return InvalidMinutes
	}

	switch format.Kind {
	case TimeFormatDecimal:
		return parseDecimalHours(text)
	case TimeFormatCustom:
		return parseLayout(text, format.Layout)
	default:
		return parseHoursMinutes(text)
	}
}

// parseHoursMinutes accepts h:mm and hh:mm wall clock times below 24:00.
// Signs and other non-digit characters are rejected.
func parseHoursMinutes(text string) ClockMinutes {
	hoursPart, minutesPart, ok := strings.Cut(text, ":")
	if len(hoursPart) < 1 || len(hoursPart) > 2 || len(minutesPart) != 2 ||
		!ok || !isDigits(hoursPart) || !isDigits(minutesPart) {
		return InvalidMinutes
	}

	hours, _ := strconv.Atoi(hoursPart)
	minutes, _ := strconv.Atoi(minutesPart)
	return NewClockMinutes(hours, minutes)
}

// parseDecimalHours accepts decimal hours below 24.
func parseDecimalHours(text string) ClockMinutes {
	hours, err := strconv.ParseFloat(text, 64)
	if err != nil || hours < 0 || math.IsInf(hours, 0) || math.IsNaN(hours) {
		return InvalidMinutes
	}
	m := ClockMinutes(math.Round(hours * 60))
	if !m.IsValidTimeOfDay() {
		return InvalidMinutes
	}
	return m
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseLayout(text, layout string) ClockMinutes {
	if layout == "" {
		return InvalidMinutes
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return InvalidMinutes
	}
	return ClockMinutes(t.Hour()*60 + t.Minute())
}

// BlockTime returns the elapsed time between off blocks and on blocks. A landing
// at or before the off-blocks time of day is taken to be on the next day, except
// for identical times which give a zero-length block rather than 24 hours.
func BlockTime(offBlocks, onBlocks ClockMinutes) ClockMinutes {
	if !offBlocks.IsValidTimeOfDay() || !onBlocks.IsValidTimeOfDay() {
		return InvalidMinutes
	}

	switch {
	case onBlocks > offBlocks:
		return onBlocks - offBlocks
	case onBlocks == offBlocks:
		return 0
	default:
		return (MinutesPerDay - offBlocks) + onBlocks
	}
}

// BlockMinutes is BlockTime as a plain int, -1 when either input is invalid.
func BlockMinutes(offBlocks, onBlocks ClockMinutes) int {
	return int(BlockTime(offBlocks, onBlocks))
}
