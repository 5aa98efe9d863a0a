package utils

import (
	"strings"
	"testing"
)

func TestValidatePasswordAccepted(t *testing.T) {
	if errs := ValidatePassword("Ab1!2345"); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidatePasswordRejectsWeakPassword(t *testing.T) {
	errs := ValidatePassword("abc")
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), errs)
	}

	seen := map[string]struct{}{}
	for _, e := range errs {
		if _, dup := seen[e]; dup {
			t.Fatalf("duplicate error message: %q", e)
		}
		seen[e] = struct{}{}
	}
	for _, e := range errs {
		if strings.Contains(e, "lowercase") {
			t.Fatalf("lowercase rule is satisfied by %q, got %v", "abc", errs)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("a@b.com") {
		t.Errorf("expected a@b.com to be valid")
	}
	if ValidateEmail("not-an-email") {
		t.Errorf("expected not-an-email to be invalid")
	}
	if ValidateEmail("") {
		t.Errorf("expected empty string to be invalid")
	}
}

func TestSanitizeStringIdempotent(t *testing.T) {
	inputs := []string{
		"  plain  ",
		"tabs\tand\nnewlines",
		"already clean",
		"\x00control\x1fchars\x7f",
		"",
	}
	for _, input := range inputs {
		once := SanitizeString(input)
		twice := SanitizeString(once)
		if once != twice {
			t.Errorf("SanitizeString not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSanitizeFileNameStripsReservedCharacters(t *testing.T) {
	inputs := []string{
		`../../etc/passwd`,
		`photo?.jpg`,
		`a|b:c*d%e"f<g>h\i.png`,
		`   `,
		`plan week 1.pdf`,
	}
	for _, input := range inputs {
		got := SanitizeFileName(input)
		if got == "" {
			t.Errorf("SanitizeFileName(%q) returned empty string", input)
		}
		if strings.ContainsAny(got, `/\?%*:|"<>`) {
			t.Errorf("SanitizeFileName(%q) = %q still contains reserved characters", input, got)
		}
	}
}
