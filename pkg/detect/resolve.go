package detect

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrBadTime is returned for a time token that cannot be read.
var ErrBadTime = errors.New("detect: unreadable time")

var tokenPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(AM|PM)$`)

// ResolveReset converts a 12-hour token such as "5 PM" or "11:00 PM" into the
// next occurrence of that wall-clock time in now's location: today when still
// ahead of now, otherwise tomorrow.
func ResolveReset(token string, now time.Time) (time.Time, error) {
	m := tokenPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, token)
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 12 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, token)
	}

	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	y, mo, d := now.Date()
	at := time.Date(y, mo, d, hour, minute, 0, 0, now.Location())
	if at.Before(now) {
		at = time.Date(y, mo, d+1, hour, minute, 0, 0, now.Location())
	}
	return at, nil
}
