package prospect

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer décompose (NFD), retire les marques diacritiques puis recompose (NFC).
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch prépare un terme de recherche : minuscules et accents retirés,
// pour que « Jérôme » matche « jerome ». En cas d'échec de la transformation,
// on retombe sur la simple mise en minuscules.
func NormalizeSearch(s string) string {
	out, _, err := transform.String(normalizer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
