package generate

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guimmamanna/synthforge/internal/rng"
	"github.com/guimmamanna/synthforge/internal/schema"
)

var (
	defaultDateStart     = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	defaultDateEnd       = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	defaultDateTimeStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	defaultDateTimeEnd   = time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
)

// GenerateUUID formats 128 freshly drawn random bits as a canonical UUID
// string, skipping the RFC 4122 version/variant bit-twiddling uuid.NewRandom
// would apply — spec.md §4.3 calls for raw random bits, not a valid v4 UUID.
func GenerateUUID(r *rng.Rng) string {
	bits := r.Bits128()
	id, _ := uuid.FromBytes(bits[:])
	return id.String()
}

// GenerateInt draws an integer in [min,max], honoring the requested
// distribution and always clamping the rounded result back into range.
func GenerateInt(r *rng.Rng, rangeVals []any, distribution schema.Distribution) int64 {
	min, max := numericRange(rangeVals, 0, 1000)
	var value float64
	switch distribution {
	case schema.DistNormal:
		mean := (min + max) / 2
		sigma := (max - min) / 6
		if sigma == 0 {
			sigma = 1
		}
		value = math.Round(r.Gauss(mean, sigma))
	case schema.DistLognormal:
		value = math.Round(scaledLognormal(r, min, max))
	default:
		value = math.Round(r.Float64Range(min, max))
	}
	return int64(clamp(value, min, max))
}

// GenerateDecimal is GenerateInt's floating counterpart: no rounding before
// clamping.
func GenerateDecimal(r *rng.Rng, rangeVals []any, distribution schema.Distribution) float64 {
	min, max := numericRange(rangeVals, 0.0, 1000.0)
	var value float64
	switch distribution {
	case schema.DistNormal:
		mean := (min + max) / 2
		sigma := (max - min) / 6
		if sigma == 0 {
			sigma = 1
		}
		value = r.Gauss(mean, sigma)
	case schema.DistLognormal:
		value = scaledLognormal(r, min, max)
	default:
		value = r.Float64Range(min, max)
	}
	return clamp(value, min, max)
}

func scaledLognormal(r *rng.Rng, min, max float64) float64 {
	if min <= 0 {
		min = 0.01
	}
	if max <= min {
		max = min + 1.0
	}
	value := r.LogNormal(0, 1)
	value = math.Log1p(value)
	return min + (max-min)*(value/(1+value))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// GenerateBool is a fair coin flip.
func GenerateBool(r *rng.Rng) bool {
	return r.Float64() < 0.5
}

// GenerateDate picks a uniform day offset within [start,end].
func GenerateDate(r *rng.Rng, start, end *time.Time) time.Time {
	s, e := defaultDateStart, defaultDateEnd
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	deltaDays := int64(e.Sub(s).Hours() / 24)
	if deltaDays < 0 {
		deltaDays = 0
	}
	offset := r.IntRange(0, deltaDays)
	return s.AddDate(0, 0, int(offset))
}

// GenerateDateTime picks a uniform second offset within [start,end].
func GenerateDateTime(r *rng.Rng, start, end *time.Time) time.Time {
	s, e := defaultDateTimeStart, defaultDateTimeEnd
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	deltaSeconds := int64(e.Sub(s).Seconds())
	if deltaSeconds < 0 {
		deltaSeconds = 0
	}
	offset := r.IntRange(0, deltaSeconds)
	return s.Add(time.Duration(offset) * time.Second)
}

const textAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

// GenerateText draws a string of uniform-random length over letters,
// digits, and space; an all-whitespace result falls back to the literal
// "text" the same way the original generator does.
func GenerateText(r *rng.Rng, minLen, maxLen int) string {
	if minLen == 0 && maxLen == 0 {
		minLen, maxLen = 5, 20
	}
	length := r.IntRange(int64(minLen), int64(maxLen))
	letters := make([]byte, length)
	for i := range letters {
		letters[i] = textAlphabet[r.IntRange(0, int64(len(textAlphabet)-1))]
	}
	text := strings.TrimSpace(string(letters))
	if text == "" {
		return "text"
	}
	return text
}

const digitChars = "0123456789"
const wordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

// GenerateTextFromRegex walks pattern left to right honoring only the
// subset spec.md §4.3 names: anchors stripped, \d/\w escapes, [a-z] style
// character classes, escaped literals, and {n}/{n,m} quantifiers. Anything
// else degrades to a literal character, matching the original tool's
// hand-rolled generator rather than pulling in a full regex-to-value
// library (spec.md's design notes call this out explicitly).
func GenerateTextFromRegex(r *rng.Rng, pattern string) string {
	cleaned := strings.TrimSpace(pattern)
	cleaned = strings.TrimPrefix(cleaned, "^")
	cleaned = strings.TrimSuffix(cleaned, "$")

	var out strings.Builder
	i := 0
	for i < len(cleaned) {
		char := cleaned[i]
		var charset, literal string
		hasLiteral := false

		switch {
		case char == '\\' && i+1 < len(cleaned):
			esc := cleaned[i+1]
			switch esc {
			case 'd':
				charset = digitChars
			case 'w':
				charset = wordChars
			default:
				literal = string(esc)
				hasLiteral = true
			}
			i += 2
		case char == '[':
			end := strings.IndexByte(cleaned[i:], ']')
			if end == -1 {
				literal = string(char)
				hasLiteral = true
				i++
			} else {
				end += i
				charset = expandClass(cleaned[i+1 : end])
				i = end + 1
			}
		default:
			literal = string(char)
			hasLiteral = true
			i++
		}

		repeat := 1
		if i < len(cleaned) && cleaned[i] == '{' {
			end := strings.IndexByte(cleaned[i:], '}')
			if end != -1 {
				end += i
				quant := cleaned[i+1 : end]
				if strings.Contains(quant, ",") {
					parts := strings.SplitN(quant, ",", 2)
					low := parseIntOrZero(strings.TrimSpace(parts[0]))
					high := parseIntOrZero(strings.TrimSpace(parts[1]))
					if high < low {
						high = low
					}
					repeat = int(r.IntRange(int64(low), int64(high)))
				} else {
					repeat = parseIntOrZero(quant)
				}
				i = end + 1
			}
		}

		for n := 0; n < repeat; n++ {
			if charset != "" {
				out.WriteByte(charset[r.IntRange(0, int64(len(charset)-1))])
			} else if hasLiteral {
				out.WriteString(literal)
			}
		}
	}
	return out.String()
}

func parseIntOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func expandClass(content string) string {
	var out strings.Builder
	i := 0
	for i < len(content) {
		if i+2 < len(content) && content[i+1] == '-' {
			for c := content[i]; c <= content[i+2]; c++ {
				out.WriteByte(c)
			}
			i += 3
		} else {
			out.WriteByte(content[i])
			i++
		}
	}
	return out.String()
}

// GenerateEnum picks among values, weighted when the weight list is the
// same length as values, uniform otherwise.
func GenerateEnum(r *rng.Rng, values []string, weights []float64) string {
	if len(values) == 0 {
		return ""
	}
	if len(weights) == len(values) {
		return rng.WeightedChoice(r, values, weights)
	}
	return rng.Choice(r, values)
}

// numericRange extracts a [min,max] pair from a column's declared range,
// falling back to the given defaults when the range is absent or short.
func numericRange(raw []any, defaultMin, defaultMax float64) (float64, float64) {
	if len(raw) < 2 {
		return defaultMin, defaultMax
	}
	min, ok1 := toFloat(raw[0])
	max, ok2 := toFloat(raw[1])
	if !ok1 || !ok2 {
		return defaultMin, defaultMax
	}
	return min, max
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ParseDateRange converts a raw two-element [start,end] range into dates,
// supporting both ISO-8601 strings and unix timestamps (int/float), the way
// the column spec's range field can carry either.
func ParseDateRange(raw []any) (*time.Time, *time.Time) {
	if len(raw) < 2 {
		return nil, nil
	}
	start := parseDateLike(raw[0])
	end := parseDateLike(raw[1])
	return start, end
}

func ParseDateTimeRange(raw []any) (*time.Time, *time.Time) {
	if len(raw) < 2 {
		return nil, nil
	}
	start := parseDateTimeLike(raw[0])
	end := parseDateTimeLike(raw[1])
	return start, end
}

func parseDateLike(v any) *time.Time {
	switch val := v.(type) {
	case int, int64, float64:
		f, _ := toFloat(val)
		t := time.Unix(int64(f), 0).UTC()
		return &t
	case string:
		t, err := time.Parse("2006-01-02", val)
		if err != nil {
			return nil
		}
		return &t
	default:
		return nil
	}
}

func parseDateTimeLike(v any) *time.Time {
	switch val := v.(type) {
	case int, int64, float64:
		f, _ := toFloat(val)
		t := time.Unix(int64(f), 0).UTC()
		return &t
	case string:
		text := strings.ReplaceAll(val, "Z", "+00:00")
		for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02T15:04:05-07:00"} {
			if t, err := time.Parse(layout, text); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// LengthRange extracts an [min,max] integer length pair, returning zeros
// when absent so callers can apply their own defaults.
func LengthRange(raw []int) (int, int) {
	if len(raw) < 2 {
		return 0, 0
	}
	return raw[0], raw[1]
}
