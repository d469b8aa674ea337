package calc

import "strings"

// FixupTimeInput normalises free-form user time entry.
//
// For the default format it accepts hh:mm, h:mm, hhmm and hmm and returns the value
// as hh:mm, or an empty string if the result is not a valid time of day. Empty input
// becomes "00:00". For the decimal format a comma decimal separator is replaced by a
// dot before parsing. Custom formats cannot be fixed and are returned unchanged.
func FixupTimeInput(input string, format TimeFormat) string {
	input = strings.TrimSpace(input)

	switch format.Kind {
	case TimeFormatDecimal:
		m := ParseClockMinutes(strings.ReplaceAll(input, ",", "."), format)
		return m.Format(format)
	case TimeFormatCustom:
		return input
	}

	if input == "" {
		return "00:00"
	}

	fixed := input
	if strings.Contains(input, ":") {
		if len(input) == 4 {
			fixed = "0" + input
		}
	} else {
		switch len(input) {
		case 4:
			fixed = input[:2] + ":" + input[2:]
		case 3:
			fixed = "0" + input[:1] + ":" + input[1:]
		}
	}

	m := ParseClockMinutes(fixed, DefaultTimeFormat)
	if !m.IsValidTimeOfDay() {
		return ""
	}
	return m.String()
}
