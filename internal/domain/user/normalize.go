package user

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const minNameLength = 2

var lowerCaser = cases.Lower(language.Und)

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return lowerCaser.String(strings.TrimSpace(email))
}

// NormalizeName trims a personal name and composes it to NFC.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func validateName(field, name string) error {
	if utf8.RuneCountInString(name) < minNameLength {
		return NewDomainError(field+" must be at least 2 characters long")
	}
	return nil
}
