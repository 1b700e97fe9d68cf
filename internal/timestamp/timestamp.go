// Package timestamp converts date strings and Unix millisecond values into
// the unix/utc pair returned by the timestamp endpoint.
package timestamp

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// ErrInvalidDate is returned when the input is neither a number nor a date.
var ErrInvalidDate = errors.New("invalid date")

// UTCLayout renders dates as "Fri, 25 Dec 2015 00:00:00 GMT".
const UTCLayout = http.TimeFormat

// DateLayout renders calendar dates as "Fri Dec 25 2015".
const DateLayout = "Mon Jan 02 2006"

// maxUnixMillis bounds numeric input to +/-100,000,000 days around the epoch.
const maxUnixMillis = 8_640_000_000_000_000

var numeric = regexp.MustCompile(`^-?\d+$`)

var parser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: append([]string{
		time.RFC3339Nano,
		time.RFC3339,
		time.RFC1123,
		time.RFC1123Z,
		time.RFC850,
		time.RFC822,
		time.ANSIC,
		time.UnixDate,
		DateLayout,
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"2 Jan 2006",
		"2006/01/02",
	}, now.TimeFormats...),
}

// Stamp is the unix/utc pair for one instant.
type Stamp struct {
	Unix int64
	UTC  string
}

// New builds the Stamp for t.
func New(t time.Time) Stamp {
	return Stamp{
		Unix: t.UnixMilli(),
		UTC:  t.UTC().Format(UTCLayout),
	}
}

// Parse interprets an all-digit input as Unix milliseconds and anything else
// as a date string in UTC. An empty input yields current. Inputs that leave out
// part of the calendar date, such as a bare time of day, are rejected.
func Parse(input string, current time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return current.UTC(), nil
	}

	if numeric.MatchString(input) {
		ms, err := strconv.ParseInt(input, 10, 64)
		if err != nil || ms > maxUnixMillis || ms < -maxUnixMillis {
			return time.Time{}, ErrInvalidDate
		}

		return time.UnixMilli(ms).UTC(), nil
	}

	base := current.UTC()

	t, err := parser.With(base).Parse(input)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	// now fills missing components from its base; a second base that differs
	// in every component exposes inputs that relied on it.
	shifted := base.AddDate(1, 1, 1).Add(time.Hour + time.Minute + time.Second + time.Nanosecond)

	other, err := parser.With(shifted).Parse(input)
	if err != nil || !other.Equal(t) {
		return time.Time{}, ErrInvalidDate
	}

	return t.UTC(), nil
}

// ParseDate parses a calendar date such as 2015-12-25 at midnight UTC.
func ParseDate(input string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(input), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}
