package utils

import (
	"regexp"
	"strings"
)

// House numbers look like "12", "12/3" or "99/12a".
var houseNumberRegex = regexp.MustCompile(`^[0-9]+(/[0-9]+[a-z]?)?$`)

// ValidateHouseNumber validates a village house number
func ValidateHouseNumber(houseNumber string) bool {
	return houseNumberRegex.MatchString(houseNumber)
}

// ValidatePassword validates a password. Minimum 6 characters with at
// least one letter and one number.
func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	hasLetter := false
	hasNumber := false

	for _, char := range password {
		switch {
		case ('a' <= char && char <= 'z') || ('A' <= char && char <= 'Z'):
			hasLetter = true
		case '0' <= char && char <= '9':
			hasNumber = true
		}
	}

	return hasLetter && hasNumber
}

// SanitizeUsername sanitizes a username before lookup or storage
func SanitizeUsername(username string) string {
	return strings.TrimSpace(username)
}
