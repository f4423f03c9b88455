package models

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// zipLength is the number of digits in a US ZIP code.
const zipLength = 5

var zipPattern = regexp.MustCompile(`\b\d{5}\b`)

// LocationQuery is a validated 5-digit ZIP code. Construct it only through
// ParseLocationQuery or NormalizeLocation; the zero value is not valid.
type LocationQuery struct {
	zip string
}

// ParseLocationQuery validates a candidate ZIP code string.
func ParseLocationQuery(s string) (LocationQuery, error) {
	s = strings.TrimSpace(s)
	if len(s) != zipLength {
		return LocationQuery{}, errors.Wrapf(ErrInvalidFormat, "expected %d digits, got %q", zipLength, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return LocationQuery{}, errors.Wrapf(ErrInvalidFormat, "non-digit in %q", s)
		}
	}
	return LocationQuery{zip: s}, nil
}

// NormalizeLocation extracts a ZIP code from free-form text. The first
// 5-digit run wins; a message with several numeric substrings (a time and a
// ZIP, say) resolves to whichever comes first.
func NormalizeLocation(raw string) (LocationQuery, error) {
	match := zipPattern.FindString(strings.TrimSpace(raw))
	if match == "" {
		return LocationQuery{}, errors.Wrap(ErrInvalidFormat, "no 5-digit ZIP code found in message")
	}
	return ParseLocationQuery(match)
}

// Zip returns the validated ZIP code string.
func (q LocationQuery) Zip() string {
	return q.zip
}

// IsZero reports whether the query was never parsed.
func (q LocationQuery) IsZero() bool {
	return q.zip == ""
}

func (q LocationQuery) String() string {
	return q.zip
}
