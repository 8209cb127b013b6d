// Package strutil holds small string helpers shared across the app.
package strutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips diacritics, so "Güç Elektroniği" and
// "guc elektronigi" compare equal. Item names and search queries are folded
// with the same function before matching (Turkish dotless ı folds to i).
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.ReplaceAll(folded, "ı", "i")
}
