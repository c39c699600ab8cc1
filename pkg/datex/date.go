// Package datex normalizes loosely-typed date input into calendar dates.
package datex

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout is the canonical calendar date layout used for storage and JSON.
const Layout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// fallbackLayouts are tried in order when the input has no ISO date substring.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Mon Jan 02 2006",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"20060102",
}

// Date is a calendar date with no time-of-day. The zero value is NULL.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns the calendar date of y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// Normalize converts v into a calendar date. Accepted inputs are strings,
// time values, epoch milliseconds and Date itself. Anything unparseable
// yields a NULL Date; Normalize never fails.
func Normalize(v any) Date {
	switch val := v.(type) {
	case nil:
		return Date{}
	case Date:
		return val
	case *Date:
		if val == nil {
			return Date{}
		}
		return *val
	case string:
		return Parse(val)
	case *string:
		if val == nil {
			return Date{}
		}
		return Parse(*val)
	case time.Time:
		return fromTime(val)
	case *time.Time:
		if val == nil {
			return Date{}
		}
		return fromTime(*val)
	case int64:
		return fromTime(time.UnixMilli(val))
	case float64:
		return fromTime(time.UnixMilli(int64(val)))
	default:
		return Date{}
	}
}

// Parse normalizes a string. An embedded YYYY-MM-DD substring wins over any
// other interpretation of the value.
func Parse(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	if m := isoDatePattern.FindString(s); m != "" {
		if t, err := time.Parse(Layout, m); err == nil {
			return Date{Time: t, Valid: true}
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fromTime(t)
		}
	}
	// JavaScript Date.toString(): "Wed May 10 2023 07:00:00 GMT+0700 (...)"
	if len(s) >= 15 {
		if t, err := time.Parse("Mon Jan 02 2006", s[:15]); err == nil {
			return fromTime(t)
		}
	}
	return Date{}
}

func fromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// String returns YYYY-MM-DD, or "" for NULL.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(Layout)
}

// Ptr returns the date as *time.Time for nullable columns.
func (d Date) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// EndOfDay is the last representable instant of the date in loc.
func (d Date) EndOfDay(loc *time.Location) time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// Sub returns the duration between two valid dates.
func (d Date) Sub(other Date) time.Duration {
	return d.Time.Sub(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a string, a number of epoch milliseconds or null.
// Unparseable values decode to NULL instead of failing the whole payload.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Parse(s)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil {
		*d = Normalize(ms)
		return nil
	}
	*d = Date{}
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = fromTime(v)
	case string:
		*d = Parse(v)
	case []byte:
		*d = Parse(string(v))
	default:
		return fmt.Errorf("datex: cannot scan %T into Date", src)
	}
	return nil
}
