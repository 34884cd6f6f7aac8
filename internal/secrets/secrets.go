// internal/secrets/secrets.go
package secrets

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

var ErrSecretNotFound = errors.New("secret not found")

var placeholder = regexp.MustCompile(`\{\{\s*secrets\.([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Lookup returns the value of a named secret.
type Lookup func(name string) (string, bool)

// Env looks secrets up in the process environment.
func Env(name string) (string, bool) { return os.LookupEnv(name) }

// Resolve replaces every {{secrets.NAME}} in value using lookup.
// Values without placeholders are returned unchanged.
func Resolve(value string, lookup Lookup) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(value, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := lookup(name)
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("%w: '%s'", ErrSecretNotFound, missing)
	}
	return out, nil
}

// ResolveAll resolves each pointed-to string in place, stopping at the first error.
func ResolveAll(lookup Lookup, fields ...*string) error {
	for _, f := range fields {
		v, err := Resolve(*f, lookup)
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}
