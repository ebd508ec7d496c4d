package carrier

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is the substitution slot for the subscriber number.
const Placeholder = "{0}"

// Template is an email address format with a single Placeholder,
// e.g. "{0}@cellcom.quiktxt.com".
type Template string

// Validate reports ErrInvalidTemplate unless the template holds exactly one
// placeholder and an '@' separator.
func (t Template) Validate() error {
	s := string(t)
	if n := strings.Count(s, Placeholder); n != 1 {
		return fmt.Errorf("%w: %q has %d placeholders, want 1", ErrInvalidTemplate, s, n)
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("%w: %q has no '@'", ErrInvalidTemplate, s)
	}
	return nil
}

// Format substitutes the decimal phone number into the placeholder.
// It is a pure function of the template and the number.
func (t Template) Format(phoneNumber int64) string {
	return strings.Replace(string(t), Placeholder, strconv.FormatInt(phoneNumber, 10), 1)
}

// String implements fmt.Stringer.
func (t Template) String() string {
	return string(t)
}
