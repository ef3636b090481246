package auth

import (
	"encoding/base64"
	"unicode"
	"unicode/utf8"

	"github.com/visitdesk/authcore/internal/common"
	"github.com/visitdesk/authcore/internal/cryptox"
)

// ValidatePasswordStrength enforces the password policy: at least minLength
// characters with one uppercase letter, one lowercase letter, one digit, and
// one symbol each.
func ValidatePasswordStrength(password string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	if utf8.RuneCountInString(password) < minLength {
		return common.ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return common.ErrWeakPassword
	}
	return nil
}

// generateTempPassword builds a one-time password for the bootstrap admin
// account. The random body carries the entropy; the fixed suffix guarantees
// the strength policy is met.
func generateTempPassword() (string, error) {
	b, err := cryptox.GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:18]) + "!Aa1", nil
}
