package timex

import (
	"strings"
	"time"
)

// diaryDateLayouts lists the date formats accepted on entry input.
// Dates are always stored in ISO-8601 form.
var diaryDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizeDiaryDate parses s using a set of common date layouts and returns
// the ISO-8601 date string. An empty or unparseable value falls back to
// today's date.
func NormalizeDiaryDate(s string, now func() time.Time) string {
	s = strings.TrimSpace(s)
	for _, layout := range diaryDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return now().Format("2006-01-02")
}
