package util

import (
	"regexp"
	"strings"
)

// symbolPattern accepts 1-5 letter tickers with an optional 1-2 letter class suffix, e.g. BRK.B.
var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]{1,2})?$`)

// NormalizeSymbol upper-cases and trims s and reports whether the result is a valid ticker.
func NormalizeSymbol(s string) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(s))
	return symbol, symbolPattern.MatchString(symbol)
}
