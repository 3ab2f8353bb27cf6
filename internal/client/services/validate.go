package services

import (
	"regexp"
	"strings"
)

// Deliberately loose: the server performs the authoritative check, this only
// catches obvious typos before a request is spent on them.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}
