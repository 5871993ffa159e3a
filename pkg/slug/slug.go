package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxWords bounds the title part of a slug
const maxWords = 8

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ForListing builds a URL-friendly slug from the listing's brand, model and
// title, suffixed with the first block of its ID for uniqueness.
// Example: "Maruti Suzuki", "Swift", "Well kept ZXi!" + "3f9c2a1e-..." -> "maruti-suzuki-swift-well-kept-zxi-3f9c2a1e"
func ForListing(id string, parts ...string) string {
	words := strings.Fields(nonAlnum.ReplaceAllString(fold(strings.Join(parts, " ")), " "))
	words = dedupe(words)
	if len(words) > maxWords {
		words = words[:maxWords]
	}

	suffix, _, _ := strings.Cut(strings.ToLower(id), "-")
	if suffix != "" {
		words = append(words, suffix)
	}
	return strings.Join(words, "-")
}

// fold lowercases s and strips combining marks, so "Škoda" reads "skoda"
func fold(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// dedupe drops repeats of a word already used, so a title restating the
// brand does not double it
func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
