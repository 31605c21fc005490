package services

import (
	"regexp"
	"strings"
)

// countryPrefix is prepended to every extracted phone number. Orders in the
// store are placed with Indian numbers.
const countryPrefix = "+91"

var (
	digitRunPattern = regexp.MustCompile(`[0-9]+`)

	// An explicit order reference: "#1234"/"#TAC1234" or the bare
	// brand-prefixed form "TAC1234".
	orderRefPattern = regexp.MustCompile(`(?i)#[A-Za-z0-9]+|\bTAC[0-9]+\b`)
)

// ExtractPhone finds the first contiguous digit run in the message that
// forms a 10-digit phone number, optionally carrying a 91 country code or a
// single leading zero, and normalizes it to the canonical international
// form. Additional digit runs in the same message are ignored.
func ExtractPhone(text string) (string, bool) {
	for _, run := range digitRunPattern.FindAllString(text, -1) {
		switch {
		case len(run) == 10:
			return countryPrefix + run, true
		case len(run) == 11 && run[0] == '0':
			return countryPrefix + run[1:], true
		case len(run) == 12 && strings.HasPrefix(run, "91"):
			return countryPrefix + run[2:], true
		}
	}
	return "", false
}

// ExtractOrderRef finds the first explicit order reference token in the
// message. The returned reference is upper-cased, with a leading "#" kept
// if present.
func ExtractOrderRef(text string) (string, bool) {
	match := orderRefPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return strings.ToUpper(match), true
}
