package metrics

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsNumber reports whether s holds a decimal number or a single Unicode
// numeric character.
//
// Hexadecimal literals and digit separators are rejected even though
// strconv accepts them. A single rune counts when unicode.IsNumber holds for
// it, so numeric ideographs outside the N* categories are not numbers.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}

	if isDecimal(s) {
		return true
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return false
	}
	return unicode.IsNumber(r)
}

func isDecimal(s string) bool {
	if strings.ContainsAny(s, "_xX") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return true
	}
	return errors.Is(err, strconv.ErrRange)
}
