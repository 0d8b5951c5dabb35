// Package clock parses date-time input and answers "is this in the past"
// relative to the wall clock of one configured civil zone.
package clock

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/keshster98/cashfly-backend/internal/domain"
)

// Layouts without an offset are read in the clock's zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Clock struct {
	loc *time.Location
	now func() time.Time
}

type Option func(*Clock)

// WithNow replaces the time source, mostly for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

func New(zone string, opts ...Option) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	c := &Clock{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) ToLocal(t time.Time) time.Time {
	return t.In(c.loc)
}

// IsPast compares t against the current wall-clock time of the zone.
func (c *Clock) IsPast(t time.Time) bool {
	return c.ToLocal(t).Before(c.Now())
}

// StartOfDay returns local midnight of the calendar day t falls on.
func (c *Clock) StartOfDay(t time.Time) time.Time {
	l := c.ToLocal(t)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, c.loc)
}

// Parse accepts RFC 3339 and the common ISO-8601 shapes browsers send from
// date-time inputs.
func (c *Clock) Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", domain.ErrInvalidTimestamp)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, raw)
}
