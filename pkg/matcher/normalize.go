package matcher

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims, folds compatibility forms and lower-cases a user question.
// Every lookup key in the bot goes through this function.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = norm.NFKC.String(s)
	return strings.ToLower(s)
}

// Tokens splits normalized text on runs of whitespace
func Tokens(s string) []string {
	return strings.Fields(s)
}

// spaceWords splits on single spaces and keeps words longer than three runes.
// Used by the similarity and alternative searches, which never collapse repeated spaces.
func spaceWords(s string) []string {
	var out []string
	for _, w := range strings.Split(s, " ") {
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// SpaceWords is the exported form of spaceWords for the feedback store's similarity lookup
func SpaceWords(s string) []string {
	return spaceWords(s)
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
