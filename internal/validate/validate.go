// internal/validate/validate.go
//
// Field validators and normalizers shared by the capture handlers.
//
// Context
// -------
// The storage schema used to be the only place these rules lived, which made
// them impossible to exercise without a database.  They are now plain
// functions invoked before any persistence call.
//
// The email and IPv4 patterns are kept byte-for-byte compatible with the
// legacy service: a single "@", no whitespace, at least one dot in the
// domain; four dot-separated groups of 1–3 digits with no range check.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ipv4RE  = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)

	// RFC 1918 ranges plus loopback, matched on the string form.
	privateRE = regexp.MustCompile(`^(192\.168\.|10\.|172\.(1[6-9]|2[0-9]|3[0-1])\.|127\.)`)
)

// NormalizeEmail trims surrounding whitespace and lowercases.  Idempotent.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail reports whether s has the canonical local@domain.tld shape.
func ValidEmail(s string) bool { return emailRE.MatchString(s) }

// ValidIPv4 reports whether s is a dotted quad of 1–3 digit groups.
func ValidIPv4(s string) bool { return ipv4RE.MatchString(s) }

// PrivateIPv4 reports whether s sits in a private or loopback range.
func PrivateIPv4(s string) bool { return privateRE.MatchString(s) }
