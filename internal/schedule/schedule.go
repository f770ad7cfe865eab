// Package schedule splits shows into past and upcoming relative to an
// evaluation instant.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// StartTimeLayout is the only accepted start_time format, always UTC.
const StartTimeLayout = "2006-01-02T15:04:05.000Z"

// ErrInvalidStartTime is returned when a show's start_time does not match
// StartTimeLayout.
var ErrInvalidStartTime = errors.New("invalid start_time")

// ParseStartTime parses a stored start_time into an absolute instant.  The
// value must be byte-for-byte what FormatStartTime would produce; time.Parse
// alone also accepts a comma before the fraction and one-digit hours.
func ParseStartTime(s string) (time.Time, error) {
	t, err := time.Parse(StartTimeLayout, s)
	if err != nil || t.Format(StartTimeLayout) != s {
		return time.Time{}, fmt.Errorf("%w %q: expected %s", ErrInvalidStartTime, s, StartTimeLayout)
	}
	return t, nil
}

// FormatStartTime renders t in the stored start_time format.
func FormatStartTime(t time.Time) string {
	return t.UTC().Format(StartTimeLayout)
}

// Classify partitions shows into those strictly before now and those
// strictly after now, preserving input order.  A show starting exactly at
// now lands in neither list.  Any unparsable start_time fails the whole
// call and no partial result is returned.
func Classify(shows []model.Show, now time.Time) (past, upcoming []model.Show, err error) {
	past = []model.Show{}
	upcoming = []model.Show{}
	for _, s := range shows {
		at, err := ParseStartTime(s.StartTime)
		if err != nil {
			return nil, nil, fmt.Errorf("show %d: %w", s.ID, err)
		}
		switch {
		case at.Before(now):
			past = append(past, s)
		case at.After(now):
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming, nil
}

// Past returns the shows that started strictly before now.
func Past(shows []model.Show, now time.Time) ([]model.Show, error) {
	past, _, err := Classify(shows, now)
	return past, err
}

// Upcoming returns the shows that start strictly after now.
func Upcoming(shows []model.Show, now time.Time) ([]model.Show, error) {
	_, upcoming, err := Classify(shows, now)
	return upcoming, err
}
