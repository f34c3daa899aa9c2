package swu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

var (
	setNumberRegex = regexp.MustCompile(`(?i)^([a-z]{2,5})[-_ ]?(\d{1,4})$`)
	numberRegex    = regexp.MustCompile(`^\d{1,4}$`)
)

// Canonicalize turns "sor_5", "SOR 005" or "SOR-005" into "SOR-005" and a
// bare "5" into the short code "005". Faces do not apply.
func Canonicalize(code, _ string) []string {
	code = strings.TrimSpace(code)
	if m := setNumberRegex.FindStringSubmatch(code); m != nil {
		n, _ := strconv.Atoi(m[2])
		return []string{decklist.FormatSetNumber(m[1], n)}
	}
	if numberRegex.MatchString(code) {
		n, _ := strconv.Atoi(code)
		return []string{fmt.Sprintf("%03d", n)}
	}
	return []string{strings.ToUpper(code)}
}
