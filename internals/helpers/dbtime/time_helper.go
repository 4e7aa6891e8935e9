package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const LocSchoolLoc = "school_loc" // *time.Location

var (
	defaultLoc   = time.UTC
	defaultLocMu sync.RWMutex
)

// SetDefaultTimezone is called once at startup with the TIMEZONE setting.
// Unknown names keep the previous location.
func SetDefaultTimezone(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLocation()
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return DefaultLocation()
	}
	defaultLocMu.Lock()
	defaultLoc = loc
	defaultLocMu.Unlock()
	return loc
}

func DefaultLocation() *time.Location {
	defaultLocMu.RLock()
	defer defaultLocMu.RUnlock()
	return defaultLoc
}

// GetSchoolLocation prefers a location set on the request, then the default.
func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return DefaultLocation()
}

// TodayIn is "today" as a calendar day in loc.
func TodayIn(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return NewDate(now.In(loc))
}

// Today is the school-local calendar day for the request.
func Today(c *fiber.Ctx) Date {
	return TodayIn(time.Now(), GetSchoolLocation(c))
}
