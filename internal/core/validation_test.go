// internal/core/validation_test.go
package core

import (
	"strings"
	"testing"
)

func TestIsValidIdentifier(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    bool
		comment string
	}{
		{"valid simple", "emp", true, ""},
		{"valid with numbers", "table_123", true, ""},
		{"valid uppercase", "EMP", true, ""},
		{"valid dollar and hash", "EMP$HIST#1", true, "Oracle allows $ and #"},
		{"valid long (128 chars)", strings.Repeat("a", 128), true, ""},
		{"invalid underscore start", "_emp", false, "must start with a letter"},
		{"invalid number start", "1emp", false, "must start with a letter"},
		{"invalid empty", "", false, "empty string"},
		{"invalid space", "my table", false, "contains space"},
		{"invalid injection", "EMP (x NUMBER); DROP TABLE X; --", false, "statement smuggling"},
		{"invalid quote", `"EMP"`, false, "quoted identifiers are not accepted"},
		{"invalid too long", strings.Repeat("a", 129), false, "exceeds 128 chars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValidIdentifier(tc.input)
			if got != tc.want {
				t.Errorf("IsValidIdentifier(%q) = %v; want %v. %s", tc.input, got, tc.want, tc.comment)
			}
		})
	}
}

func TestParseIdentifierPolicy(t *testing.T) {
	testCases := []struct {
		input   string
		want    IdentifierPolicy
		wantErr bool
	}{
		{"", PolicyVerbatim, false},
		{"verbatim", PolicyVerbatim, false},
		{"STRICT", PolicyStrict, false},
		{" strict ", PolicyStrict, false},
		{"quote", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseIdentifierPolicy(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseIdentifierPolicy(%q) error = %v; wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseIdentifierPolicy(%q) = %q; want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCheckIdentifier(t *testing.T) {
	if err := PolicyVerbatim.CheckIdentifier("table name", "EMP; DROP"); err != nil {
		t.Errorf("verbatim policy should accept anything, got %v", err)
	}
	if err := PolicyStrict.CheckIdentifier("table name", "EMP"); err != nil {
		t.Errorf("strict policy should accept EMP, got %v", err)
	}
	err := PolicyStrict.CheckIdentifier("column name", "a b")
	if err == nil || !strings.Contains(err.Error(), "column name 'a b'") {
		t.Errorf("strict policy should reject 'a b' naming it, got %v", err)
	}
}
