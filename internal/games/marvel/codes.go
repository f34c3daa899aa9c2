package marvel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var codeRegex = regexp.MustCompile(`^(\d{1,6})([a-zA-Z]?)$`)

// splitCode splits "01001a" into "01001" and "a". A code that is not
// number-shaped is returned whole as the number.
func splitCode(code string) (number, face string) {
	m := codeRegex.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return strings.TrimSpace(code), ""
	}
	return m[1], strings.ToLower(m[2])
}

// padNumber zero-pads a MarvelCDB card number to five digits.
func padNumber(number string) string {
	n, err := strconv.Atoi(number)
	if err != nil || len(number) >= 5 {
		return number
	}
	return fmt.Sprintf("%05d", n)
}

// Canonicalize pads the number and lower-cases the face. A bare number is
// tried with defaultFace first, then on its own.
func Canonicalize(code, defaultFace string) []string {
	number, face := splitCode(code)
	number = padNumber(number)
	if face != "" {
		return []string{number + face}
	}

	defaultFace = strings.ToLower(strings.TrimSpace(defaultFace))
	if defaultFace != "" {
		return []string{number + defaultFace, number}
	}
	return []string{number}
}
