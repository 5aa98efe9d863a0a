package utils

import (
	"net/mail"
	"strings"
	"unicode"
)

// ValidatePassword checks the signup password policy and returns one message
// per unmet rule. An empty slice means the password is acceptable.
func ValidatePassword(password string) []string {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		errs = append(errs, "Password must contain an uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "Password must contain a lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "Password must contain a digit")
	}
	if !hasSpecial {
		errs = append(errs, "Password must contain a special character")
	}

	return errs
}

func ValidateEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Address != ""
}

// SanitizeString strips control characters and surrounding whitespace.
// Applying it twice yields the same result as applying it once.
func SanitizeString(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	"?", "-",
	"%", "-",
	"*", "-",
	":", "-",
	"|", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	" ", "_",
)

// SanitizeFileName rewrites a client-supplied filename so it is safe to use
// as a storage object name. The result never contains path separators or
// URL-significant characters.
func SanitizeFileName(name string) string {
	sanitized := fileNameReplacer.Replace(SanitizeString(name))
	sanitized = strings.Trim(sanitized, ".")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}
