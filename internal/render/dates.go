// Package render turns a resume document into a page layout tree and draws
// it to PDF.
package render

import (
	"strconv"
	"strings"
)

// PresentSentinel is the literal end-date value meaning "still ongoing".
const PresentSentinel = "Present"

var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatDate converts "YYYY-MM" into a human label like "Jan 2023". The
// empty string and the Present sentinel pass through unchanged, and any
// input that does not parse (missing part, non-numeric or out-of-range
// month) is returned as-is rather than erroring.
func FormatDate(s string) string {
	if s == "" || s == PresentSentinel {
		return s
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return s
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return s
	}
	return monthAbbrevs[month-1] + " " + parts[0]
}

// DateRange renders "<start> - <end>" with both ends formatted. It returns
// the empty string unless both ends are non-empty; a half-specified range
// is suppressed entirely.
func DateRange(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return FormatDate(start) + " - " + FormatDate(end)
}
