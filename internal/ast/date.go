package ast

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultDateFormat is the format used when printing a date value with no
// explicit format string (spec.md §6 "Printed forms").
const DefaultDateFormat = "%M/%D/%Y %H:%U:%S %P"

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
var longMonths = [...]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
var shortDays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
var longDays = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FormatDate renders unixSeconds (UTC) according to Tap's `%`-prefixed date
// format language (spec.md §6 "Date format language", grounded on the
// original's source/dates.c). An unrecognized `%x` code aborts formatting
// and the whole function returns "" per spec: "Unknown codes cause the
// formatter to abort the format and return a nil result" (the Expr-level
// nil substitution happens in the caller; here "" signals abort).
func FormatDate(unixSeconds int64, format string) string {
	t := time.Unix(unixSeconds, 0).UTC()
	out := make([]byte, 0, len(format)+16)
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			out = append(out, string(runes[i])...)
			continue
		}
		i++
		if i >= len(runes) {
			return ""
		}
		piece, ok := formatCode(runes[i], t)
		if !ok {
			return ""
		}
		out = append(out, piece...)
	}
	return string(out)
}

func formatCode(code rune, t time.Time) (string, bool) {
	switch code {
	case 'd': // day of month, no padding
		return strconv.Itoa(t.Day()), true
	case 'D': // day of month, padded
		return fmt.Sprintf("%02d", t.Day()), true
	case 'm': // month, no padding
		return strconv.Itoa(int(t.Month())), true
	case 'M': // month, padded
		return fmt.Sprintf("%02d", int(t.Month())), true
	case 'n': // abbreviated month name
		return shortMonths[t.Month()-1], true
	case 'N': // full month name
		return longMonths[t.Month()-1], true
	case 'o': // abbreviated weekday name
		return shortDays[t.Weekday()], true
	case 'O': // full weekday name
		return longDays[t.Weekday()], true
	case 'y': // abbreviated (2-digit) year
		return fmt.Sprintf("%02d", t.Year()%100), true
	case 'Y': // full year
		return strconv.Itoa(t.Year()), true
	case 'h': // 12-hour, no padding
		return strconv.Itoa(hour12(t)), true
	case 'H': // 12-hour, padded
		return fmt.Sprintf("%02d", hour12(t)), true
	case 'i': // 24-hour, no padding
		return strconv.Itoa(t.Hour()), true
	case 'I': // 24-hour, padded
		return fmt.Sprintf("%02d", t.Hour()), true
	case 'u': // minute, no padding
		return strconv.Itoa(t.Minute()), true
	case 'U': // minute, padded
		return fmt.Sprintf("%02d", t.Minute()), true
	case 's': // second, no padding
		return strconv.Itoa(t.Second()), true
	case 'S': // second, padded
		return fmt.Sprintf("%02d", t.Second()), true
	case 'p': // am/pm lowercase
		if t.Hour() < 12 {
			return "am", true
		}
		return "pm", true
	case 'P': // AM/PM uppercase
		if t.Hour() < 12 {
			return "AM", true
		}
		return "PM", true
	case 'w': // day of week, 0 = Sunday
		return strconv.Itoa(int(t.Weekday())), true
	case 'e': // day of year, no padding
		return strconv.Itoa(t.YearDay()), true
	case 'E': // day of year, padded
		return fmt.Sprintf("%03d", t.YearDay()), true
	case 'f': // week of year, no padding
		_, wk := t.ISOWeek()
		return strconv.Itoa(wk), true
	case 'F': // week of year, padded
		_, wk := t.ISOWeek()
		return fmt.Sprintf("%02d", wk), true
	case '%':
		return "%", true
	default:
		return "", false
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}
