// File: /utils/validators_test.go
package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"lan@xclub.vn", true},
		{"minh.tran+test@example.com", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"three character types", "Passw0rd", true},
		{"lower, number, special", "pass-w0rd", true},
		{"too short", "Pw0!", false},
		{"only lowercase", "password", false},
		{"only two types", "password1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPassword(tt.password); got != tt.want {
				t.Errorf("IsValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0912345678", true},
		{"+84 91 234 5678", true},
		{"(04) 3826-1234", true},
		{"12345", false},
		{"not-a-phone", false},
		{"+123456789012345678901", false},
	}

	for _, tt := range tests {
		if got := IsValidPhone(tt.phone); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
