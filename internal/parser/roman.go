package parser

// romanValues covers standard numerals; unknown runes count as zero so a
// garbled heading degrades instead of failing the chapter split.
var romanValues = map[rune]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// RomanToInt converts a Roman numeral (subtractive notation) or a literal
// digit string to an integer.
func RomanToInt(s string) int {
	if isDigits(s) {
		n := 0
		for _, r := range s {
			n = n*10 + int(r-'0')
		}
		return n
	}

	result := 0
	prev := 0
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		v := romanValues[toUpperRune(runes[i])]
		if v < prev {
			result -= v
		} else {
			result += v
		}
		prev = v
	}
	return result
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
