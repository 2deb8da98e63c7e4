package utils

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile("[^a-z0-9.]+")

// Slugify builds a stable URL-safe identifier. Dots are preserved because
// permission slugs are dotted paths like "orders.refund".
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-.")
}
