package validate

import "strconv"

// PositiveInt parses s as a base-10 integer greater than zero.
// Chat input arrives as free text, so anything else is rejected.
func PositiveInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// AmountAtLeast parses s and additionally enforces a lower bound.
func AmountAtLeast(s string, min int64) (int64, bool) {
	n, ok := PositiveInt(s)
	if !ok || n < min {
		return 0, false
	}
	return n, true
}
