package payment

import (
	"regexp"
	"strings"
)

// Kenyan mobile numbers: +254 or 0 prefix, then a 7xx/8xx/9xx block.
var msisdnRE = regexp.MustCompile(`^(\+254|0)[7-9]\d{8}$`)

// NormalizeMsisdn strips all whitespace and reports whether the result
// is a valid Kenyan mobile number.
func NormalizeMsisdn(raw string) (string, bool) {
	n := strings.Join(strings.Fields(raw), "")
	return n, msisdnRE.MatchString(n)
}
