package meter

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rickb777/date"
)

var (
	bareDateRe  = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`)
	fullRangeRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{2},\d{2}:\d{2};\d{2}-\d{2}-\d{2},\d{2}:\d{2}$`)
)

// ResolveDateRange implements the §6 range literal grammar: callers may
// pass "yesterday", a bare "yy-mm-dd", or the full
// "yy-mm-dd,HH:MM;yy-mm-dd,HH:MM" (inclusive start, exclusive end). The
// first two are resolved to the third using a calendar library rather than
// hand-rolled day arithmetic — the original implementation's Julian-day
// calculation had a month-boundary bug that skipped from day 28 straight
// into the next month (see REDESIGN FLAGS); rickb777/date's AddDate
// absorbs all month/year rollover correctly.
func ResolveDateRange(literal string, now time.Time) (string, error) {
	switch {
	case literal == "":
		return "", nil // empty range requests the meter's entire buffer
	case literal == "yesterday":
		today := date.NewAt(now)
		yesterday := today.AddDate(0, 0, -1)
		return formatRange(yesterday, today), nil
	case bareDateRe.MatchString(literal):
		d, err := parseShortDate(literal)
		if err != nil {
			return "", fmt.Errorf("meter: resolve_date_range %q: %w", literal, err)
		}
		return formatRange(d, d.AddDate(0, 0, 1)), nil
	case fullRangeRe.MatchString(literal):
		return literal, nil
	default:
		return "", fmt.Errorf("meter: resolve_date_range: unrecognized range literal %q", literal)
	}
}

func parseShortDate(s string) (date.Date, error) {
	var yy, mm, dd int
	if _, err := fmt.Sscanf(s, "%02d-%02d-%02d", &yy, &mm, &dd); err != nil {
		return date.Date{}, err
	}
	return date.New(2000+yy, time.Month(mm), dd), nil
}

func formatRange(start, end date.Date) string {
	return fmt.Sprintf("%s,00:00;%s,00:00", shortDate(start), shortDate(end))
}

func shortDate(d date.Date) string {
	return fmt.Sprintf("%02d-%02d-%02d", d.Year()%100, int(d.Month()), d.Day())
}
