package model

import (
	"regexp"
	"strings"
)

// PersonKey identifies a therapist across the booking export and the
// availability report. It is the lower-cased first alphabetic token of a
// display name, which makes it a lossy join key: two people sharing a first
// name collide.
type PersonKey string

var firstToken = regexp.MustCompile(`^\s*(\p{L}+)`)

// NormalizeName derives the PersonKey for a raw display name. It returns ""
// when the name does not start with an alphabetic token.
func NormalizeName(raw string) PersonKey {
	m := firstToken.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return PersonKey(strings.ToLower(m[1]))
}

// Title returns the key with its first letter upper-cased, used when no raw
// display name is known.
func (k PersonKey) Title() string {
	if k == "" {
		return ""
	}
	r := []rune(string(k))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
