package soocial

import (
	"fmt"
	"regexp"
)

var validContactID = regexp.MustCompile(`^[0-9]+$`)

// ContactID is the numeric string Soocial assigns to every contact.
type ContactID string

// ParseContactID validates s. Anything other than a non-empty run of ASCII
// digits fails with ErrInvalidContactID.
func ParseContactID(s string) (ContactID, error) {
	if !validContactID.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidContactID, s)
	}

	return ContactID(s), nil
}

// String implements fmt.Stringer.
func (id ContactID) String() string {
	return string(id)
}

// Fields holds contact attributes for create and update requests. Each entry
// is sent as a contact[<key>] form field. Slice values repeat the field, bools
// are sent as true/false and nil values are left out.
type Fields map[string]any
