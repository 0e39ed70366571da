package service

import (
	"errors"
	"testing"

	"github.com/nexpetcare/nexpetcare/internal/config"
)

func TestValidatePasswordDisabledPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("expected nil for disabled policy, got: %v", err)
	}
}

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8}
	if err := validatePassword(policy, "short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected password too weak, got: %v", err)
	}
	if err := validatePassword(policy, "longenough"); err != nil {
		t.Fatalf("expected ok, got: %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}
	cases := []struct {
		password string
		wantWeak bool
	}{
		{"alllowercase1", true},
		{"ALLUPPERCASE1", true},
		{"NoNumbersHere", true},
		{"GoodPass1", false},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.wantWeak && !errors.Is(err, ErrPasswordTooWeak) {
			t.Fatalf("expected %q to be rejected, got: %v", tc.password, err)
		}
		if !tc.wantWeak && err != nil {
			t.Fatalf("expected %q to pass, got: %v", tc.password, err)
		}
	}
}

func TestValidatePasswordCountsRunes(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 4}
	if err := validatePassword(policy, "пароль"); err != nil {
		t.Fatalf("expected multibyte password to count by rune, got: %v", err)
	}
}
