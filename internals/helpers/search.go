package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch applies NFKC, folds case, trims and collapses inner spaces.
func NormalizeSearch(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikeContains builds a "%term%" pattern for `LIKE ? ESCAPE '\'`.
func LikeContains(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
