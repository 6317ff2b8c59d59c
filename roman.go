package docmerge

import (
	"fmt"
	"strings"
)

// Roman numeral bounds. Larger values have no practical subtractive-notation
// representation for page numbering.
const (
	RomanMin = 1
	RomanMax = 3999
)

// romanValues pairs descending integer values with their subtractive-notation
// symbols. Order matters: the greedy conversion walks it front to back.
var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"},
	{1, "I"},
}

// ToRoman converts n to its Roman numeral representation.
// Valid for n in [RomanMin, RomanMax].
func ToRoman(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("%w: %d", ErrRomanNotPositive, n)
	}
	if n > RomanMax {
		return "", fmt.Errorf("%w: %d", ErrRomanOutOfRange, n)
	}

	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String(), nil
}

// FromRoman parses a Roman numeral in subtractive notation back to an integer.
// Parsing is case-insensitive. Returns ErrRomanParse for malformed input,
// including well-formed-looking strings that are not the canonical spelling
// (e.g. "IIII" or "VX").
func FromRoman(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrRomanParse)
	}

	upper := strings.ToUpper(s)
	n := 0
	rest := upper
	for _, rv := range romanValues {
		for strings.HasPrefix(rest, rv.symbol) {
			n += rv.value
			rest = rest[len(rv.symbol):]
		}
	}
	if rest != "" {
		return 0, fmt.Errorf("%w: %q", ErrRomanParse, s)
	}

	// Greedy parsing accepts some non-canonical spellings ("IIII", "XXXX").
	// Re-encode and compare to reject them.
	canonical, err := ToRoman(n)
	if err != nil || canonical != upper {
		return 0, fmt.Errorf("%w: %q", ErrRomanParse, s)
	}
	return n, nil
}
