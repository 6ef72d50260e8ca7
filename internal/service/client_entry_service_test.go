package service

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"first.last@sub.example.co",
		"user+tag@example.org",
	}
	for _, email := range valid {
		if !validEmail(email) {
			t.Errorf("validEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"not-an-email",
		"missing@domain",
		"@example.com",
		"Jane Doe <jane@example.com>",
		"jane@example.com, joe@example.com",
		"jane @example.com",
		"",
	}
	for _, email := range invalid {
		if validEmail(email) {
			t.Errorf("validEmail(%q) = true, want false", email)
		}
	}
}

func TestValidationErrorFields(t *testing.T) {
	verr := newValidationError()
	if verr.hasErrors() {
		t.Fatal("fresh validation error should be empty")
	}

	verr.add("email", "This field is required.")
	verr.add("name", "This field is required.")
	verr.add("email", "Enter a valid email address.")

	if !verr.hasErrors() {
		t.Fatal("expected errors after add")
	}
	if len(verr.Fields["email"]) != 2 {
		t.Errorf("expected 2 email messages, got %d", len(verr.Fields["email"]))
	}
	if len(verr.Fields["name"]) != 1 {
		t.Errorf("expected 1 name message, got %d", len(verr.Fields["name"]))
	}
}
