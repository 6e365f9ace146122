// Package clock converts stored UTC timestamps into the hotel's fixed
// display zone. Persistence is always UTC; rendering is always zone-aware
// so daylight-saving transitions come out right.
package clock

import (
	"fmt"
	"time"
)

const displayLayout = "January 2, 2006 at 03:04 PM"

type Formatter struct {
	loc *time.Location
}

// NewFormatter loads the named tz-database zone, e.g. "America/New_York".
func NewFormatter(zone string) (*Formatter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock: load zone %q: %w", zone, err)
	}
	return &Formatter{loc: loc}, nil
}

// Display renders the instant as wall-clock time in the display zone.
func (f *Formatter) Display(t time.Time) string {
	return t.In(f.loc).Format(displayLayout)
}

// DisplayOrEmpty renders a nullable timestamp; nil becomes "".
func (f *Formatter) DisplayOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.Display(*t)
}

// Now returns the current instant in UTC, the only form this service stores.
func Now() time.Time {
	return time.Now().UTC()
}
