// Package slug derives URL identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// folding maps common Latin diacritics onto their ASCII equivalents so that
// slugs stay within [a-z0-9-] regardless of the catalog's display language.
var folding = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ğ", "g", "ñ", "n", "ş", "s", "ý", "y",
	"æ", "ae", "ß", "ss",
)

// Generate builds a URL slug from a name: the input is lowercased, diacritics
// are folded to ASCII and every other non-alphanumeric run collapses into a
// single hyphen.
//
//	Generate("Güneş Gözlüğü") == "gunes-gozlugu"
//	Generate("Café   Crème!") == "cafe-creme"
func Generate(name string) string {
	s := folding.Replace(strings.ToLower(strings.TrimSpace(name)))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
