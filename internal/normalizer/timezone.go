package normalizer

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimezoneConversion is returned when a timestamp cannot be parsed or
// falls into a DST gap of the source zone.
var ErrTimezoneConversion = errors.New("timezone conversion failed")

// DefaultSourceTimezone is the zone naive source timestamps are assumed
// to be in when the configuration does not name one.
const DefaultSourceTimezone = "Asia/Kolkata"

// timestampLayouts are the ISO-like patterns accepted for order
// timestamps, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Converter interprets naive timestamp text as wall-clock time in a fixed
// source zone and converts it to UTC.
type Converter struct {
	loc *time.Location
}

// NewConverter creates a converter for the named IANA timezone.
func NewConverter(tz string) (*Converter, error) {
	if tz == "" {
		tz = DefaultSourceTimezone
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load source timezone %q: %w", tz, err)
	}

	return &Converter{loc: loc}, nil
}

// Location returns the source zone the converter interprets input in.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// ToUTC parses a naive timestamp and returns both the wall-clock value in
// the source zone and its UTC equivalent. Conversion happens exactly once
// per timestamp: downstream stages carry the typed UTC value, so there is
// no path that could re-apply the offset.
func (c *Converter) ToUTC(text string) (local, utc time.Time, err error) {
	var parsed time.Time

	var layout string

	for _, l := range timestampLayouts {
		if t, perr := time.ParseInLocation(l, text, c.loc); perr == nil {
			parsed, layout = t, l
			break
		}
	}

	if layout == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrTimezoneConversion, text)
	}

	// A value inside a DST gap is normalized by the parser and no longer
	// round-trips to the original text.
	if parsed.Format(layout) != text {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q is not a valid local time in %s", ErrTimezoneConversion, text, c.loc)
	}

	return parsed, parsed.UTC(), nil
}
