package phone

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidNumber means the input could not be reduced to any known
	// local or international shape.
	ErrInvalidNumber = errors.New("Invalid phone number")
	// ErrInvalidSafaricom means the number has a valid shape but is not a
	// Safaricom subscriber number (must be 2547XXXXXXXX or 2541XXXXXXXX).
	ErrInvalidSafaricom = errors.New("Invalid Safaricom number")
)

var safaricomRe = regexp.MustCompile(`^254(7|1)\d{8}$`)

// Normalize reduces an arbitrary phone string to the canonical 254XXXXXXXXX
// form. It strips formatting characters, repairs numbers wrongly sent as
// 25407XXXXXXXX, converts local 07/01 and bare 7/1 forms, and finally
// validates the result against the Safaricom prefix rules.
func Normalize(raw string) (string, error) {
	digits := stripNonDigits(raw)

	// Fix numbers wrongly sent as 25407XXXXXXXX
	if strings.HasPrefix(digits, "2540") && len(digits) == 13 {
		digits = "254" + digits[4:]
	}

	var normalized string
	switch {
	case strings.HasPrefix(digits, "254") && len(digits) == 12:
		normalized = digits
	case (strings.HasPrefix(digits, "07") || strings.HasPrefix(digits, "01")) && len(digits) == 10:
		normalized = "254" + digits[1:]
	case (strings.HasPrefix(digits, "7") || strings.HasPrefix(digits, "1")) && len(digits) == 9:
		normalized = "254" + digits
	default:
		return "", ErrInvalidNumber
	}

	if !safaricomRe.MatchString(normalized) {
		return "", ErrInvalidSafaricom
	}

	return normalized, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
