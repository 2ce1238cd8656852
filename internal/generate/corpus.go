package generate

import (
	"fmt"
	"strings"

	"github.com/guimmamanna/synthforge/internal/rng"
)

var (
	firstNames = []string{"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Riley", "Jamie", "Casey", "Avery", "Quinn"}
	lastNames  = []string{"Smith", "Patel", "Kim", "Garcia", "Brown", "Jones", "Miller", "Davis", "Wilson", "Clark"}
	domains    = []string{"example.com", "test.local", "sample.org", "demo.dev"}
	countries  = []string{"United Kingdom", "United States", "Canada", "Germany", "France", "Australia", "Japan", "Brazil"}
	phonePrefixes = []string{"+1", "+44", "+49", "+33", "+81", "+61"}
	ukAreas       = []string{"SW", "SE", "NW", "NE", "EC", "WC", "W", "E", "N", "S", "B", "M", "L", "G", "EH"}
)

// GenerateName draws "First Last" from fixed name corpora.
func GenerateName(r *rng.Rng) string {
	return rng.Choice(r, firstNames) + " " + rng.Choice(r, lastNames)
}

// GenerateEmail formats "first.last@domain" in lowercase.
func GenerateEmail(r *rng.Rng) string {
	local := strings.ToLower(rng.Choice(r, firstNames) + "." + rng.Choice(r, lastNames))
	return local + "@" + rng.Choice(r, domains)
}

// GeneratePhone formats "<prefix><10 digits>".
func GeneratePhone(r *rng.Rng) string {
	prefix := rng.Choice(r, phonePrefixes)
	var digits strings.Builder
	for i := 0; i < 10; i++ {
		digits.WriteByte(byte('0' + r.IntRange(0, 9)))
	}
	return prefix + digits.String()
}

// GenerateCountry draws one of a fixed set of country names.
func GenerateCountry(r *rng.Rng) string {
	return rng.Choice(r, countries)
}

// GeneratePostcodeUK formats "<area><1-9> <0-9><A-Z><A-Z>".
func GeneratePostcodeUK(r *rng.Rng) string {
	area := rng.Choice(r, ukAreas)
	district := r.IntRange(1, 9)
	sector := r.IntRange(0, 9)
	unit1 := byte('A' + r.IntRange(0, 25))
	unit2 := byte('A' + r.IntRange(0, 25))
	return fmt.Sprintf("%s%d %d%c%c", area, district, sector, unit1, unit2)
}
