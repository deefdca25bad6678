package episode

import "strings"

var romanValues = map[rune]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// DecodeRoman converts a subtractive-notation Roman numeral to an integer.
// The input is case-insensitive. Empty or unrecognized input decodes to 0.
func DecodeRoman(s string) int {
	runes := []rune(strings.ToUpper(strings.TrimSpace(s)))
	if len(runes) == 0 {
		return 0
	}

	total := 0
	for i, c := range runes {
		v, ok := romanValues[c]
		if !ok {
			return 0
		}

		if i < len(runes)-1 {
			next, ok := romanValues[runes[i+1]]
			if !ok {
				return 0
			}
			if v < next {
				total -= v
				continue
			}
		}

		total += v
	}

	return total
}
