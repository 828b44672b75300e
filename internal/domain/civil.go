package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DateOnly is a calendar date without a time component. It marshals to
// YYYY-MM-DD and maps to a SQL DATE column.
type DateOnly struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOnly{t}, nil
}

func Date(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = DateOnly{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateOnly) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

// TimeOfDay is a wall-clock time without a date. It marshals to HH:MM and
// maps to a SQL TIME column.
type TimeOfDay struct {
	time.Time
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{t}, nil
}

func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay{time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)}
}

func (c TimeOfDay) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + c.Format(timeLayout) + `"`), nil
}

func (c *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*c = TimeOfDay{}
		return nil
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c TimeOfDay) Value() (driver.Value, error) {
	return c.Format("15:04:05"), nil
}

func (c *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		c.Time = time.Date(0, 1, 1, v.Hour(), v.Minute(), 0, 0, time.UTC)
		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (c *TimeOfDay) scanString(s string) error {
	// TIME columns come back as HH:MM:SS
	for _, layout := range []string{"15:04:05", timeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			c.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid time value %q", s)
}
