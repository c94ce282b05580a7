package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
)

// DateLayout is the day-month-year layout used for birthdates and offense dates.
const DateLayout = "02-01-2006"

// IdentifierSpecials is the set of characters counted in the middle of a person identifier.
const IdentifierSpecials = "@#$%^&*!()_+=-"

const (
	identifierLength     = 10
	minIdentifierSpecial = 2
	addressSegments      = 5
	addressState         = "Victoria"
	addressCountry       = "Australia"
)

var datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ValidatePersonID reports whether id has the shape
// <two digits 2-9><six chars, at least two specials, rest alphanumeric><two uppercase letters>.
func ValidatePersonID(id string) bool {
	if len(id) != identifierLength {
		return false
	}
	if !isDigitInRange(id[0]) || !isDigitInRange(id[1]) {
		return false
	}

	specials := 0
	for i := 2; i < 8; i++ {
		c := id[i]
		switch {
		case strings.IndexByte(IdentifierSpecials, c) >= 0:
			specials++
		case isASCIIAlnum(c):
		default:
			return false
		}
	}
	if specials < minIdentifierSpecial {
		return false
	}

	return isASCIIUpper(id[8]) && isASCIIUpper(id[9])
}

// ValidateAddress reports whether addr is five '|' separated segments ending in Victoria|Australia.
func ValidateAddress(addr string) bool {
	parts := strings.Split(addr, "|")
	if len(parts) != addressSegments {
		return false
	}
	return strings.EqualFold(parts[3], addressState) && strings.EqualFold(parts[4], addressCountry)
}

// ValidateDate reports whether s is a real DD-MM-YYYY calendar date.
func ValidateDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate parses a strict DD-MM-YYYY date to UTC midnight.
// time.Parse already rejects out-of-range days such as 31-02; the pattern
// check rejects unpadded or reordered input it would otherwise accept.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q is not DD-MM-YYYY", apperrors.ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidDate, err)
	}
	return t, nil
}

// FormatDate renders t in the store's DD-MM-YYYY layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func isDigitInRange(c byte) bool {
	return c >= '2' && c <= '9'
}

func isASCIIAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
