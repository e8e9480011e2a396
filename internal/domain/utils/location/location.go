// Package location holds the time zone the team plays in. Dates are stored in UTC
// and shown in this zone.
package location

import (
	"sync/atomic"
	"time"
)

var current atomic.Pointer[time.Location]

// Location returns the configured zone, UTC until Set is called.
func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Set loads the IANA zone name and makes it the current one.
func Set(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	current.Store(loc)
	return nil
}
