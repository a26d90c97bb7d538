package utils

import "regexp"

var phonePattern = regexp.MustCompile(`^\d{1,3} \d{8,9}$`)

// FormatToNumber splits a raw MSISDN into "<country prefix> <subscriber>"
// form. Twelve-digit numbers carry a 3-digit prefix, eleven-digit numbers a
// 2-digit prefix, anything else a single leading digit. Input already in
// split form comes back unchanged, so formatting is idempotent.
func FormatToNumber(number string) string {
	if phonePattern.MatchString(number) {
		return number
	}
	switch len(number) {
	case 12:
		return number[:3] + " " + number[3:]
	case 11:
		return number[:2] + " " + number[2:]
	}
	if number == "" {
		return number
	}
	return number[:1] + " " + number[1:]
}

// ValidateAsPhoneNumber reports whether tel is a plausible international
// phone number: a 1-3 digit country prefix followed by 8-9 subscriber digits.
func ValidateAsPhoneNumber(tel string) bool {
	return phonePattern.MatchString(FormatToNumber(tel))
}
