package services

import (
	"regexp"
	"strings"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives a post slug from its title: lowercase, whitespace runs
// become hyphens, everything outside [a-z0-9-] is stripped. The slug is
// always re-derived from the title and never settable on its own.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugSpaces.ReplaceAllString(slug, "-")
	return slugInvalid.ReplaceAllString(slug, "")
}
