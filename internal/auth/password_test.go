package auth

import (
	"errors"
	"testing"

	"github.com/visitdesk/authcore/internal/common"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"all classes present", "CorrectHorseBattery9!", false},
		{"exactly minimum length", "Aa1!Aa1!Aa1!", false},
		{"too short", "Aa1!short", true},
		{"no uppercase", "correcthorsebattery9!", true},
		{"no lowercase", "CORRECTHORSEBATTERY9!", true},
		{"no digit", "CorrectHorseBattery!", true},
		{"no symbol", "CorrectHorseBattery99", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password, 12)
			if tc.wantErr {
				if !errors.Is(err, common.ErrWeakPassword) {
					t.Fatalf("want ErrWeakPassword, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePasswordStrength_InjectedMinimum(t *testing.T) {
	if err := ValidatePasswordStrength("Aa1!xxxx", 8); err != nil {
		t.Fatalf("unexpected error with min length 8: %v", err)
	}
	if err := ValidatePasswordStrength("Aa1!xxxx", 16); !errors.Is(err, common.ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword with min length 16, got %v", err)
	}
}

func TestGenerateTempPassword_MeetsPolicy(t *testing.T) {
	p1, err := generateTempPassword()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePasswordStrength(p1, DefaultMinPasswordLength); err != nil {
		t.Fatalf("temp password fails own policy: %v", err)
	}

	p2, err := generateTempPassword()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("two temp passwords are identical")
	}
}
