package render

import (
	"strings"
	"time"
)

// FileName builds the download name for an exported PDF:
// <sanitized-name>_resume_<DDMonYYYY>_<HHMM>.pdf. Sanitization keeps only
// alphanumerics, collapses the rest into single underscores, trims them at
// both ends, and falls back to "resume" when nothing is left.
func FileName(personalName string, now time.Time) string {
	name := sanitizeName(personalName)
	if name == "" {
		name = "resume"
	}
	return name + "_resume_" + now.Format("02Jan2006") + "_" + now.Format("1504") + ".pdf"
}

func sanitizeName(s string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && sb.Len() > 0 {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(sb.String(), "_")
}
