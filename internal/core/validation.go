// internal/core/validation.go
package core

import (
	"fmt"
	"regexp"
	"strings"
)

// Oracle unquoted identifier: starts with a letter, then letters, digits, _, $ or #, max 128 bytes.
var nameValidationRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_$#]*$`)

const maxIdentifierLength = 128

// IdentifierPolicy controls how table and column names reach the SQL text.
type IdentifierPolicy string

const (
	// PolicyVerbatim concatenates names exactly as supplied.
	PolicyVerbatim IdentifierPolicy = "verbatim"
	// PolicyStrict rejects anything that is not a plain unquoted identifier.
	PolicyStrict IdentifierPolicy = "strict"
)

// ParseIdentifierPolicy maps a config value to a policy; empty means verbatim.
func ParseIdentifierPolicy(s string) (IdentifierPolicy, error) {
	switch IdentifierPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyVerbatim:
		return PolicyVerbatim, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", fmt.Errorf("unknown identifier policy '%s'", s)
}

// IsValidIdentifier checks if a string is a plain Oracle identifier (table or column name).
func IsValidIdentifier(name string) bool {
	return len(name) > 0 && len(name) <= maxIdentifierLength && nameValidationRegex.MatchString(name)
}

// CheckIdentifier returns an error describing why name is rejected under the policy, or nil.
func (p IdentifierPolicy) CheckIdentifier(kind, name string) error {
	if p != PolicyStrict || IsValidIdentifier(name) {
		return nil
	}
	return fmt.Errorf("invalid %s '%s': use a letter followed by letters, digits, '_', '$' or '#', max length %d", kind, name, maxIdentifierLength)
}
