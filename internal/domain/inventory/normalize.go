package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD) y elimina marcas diacríticas, para que la
// búsqueda de repuestos sea insensible a tildes ("bujía" ~ "bujia").
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeQuery normaliza un término de búsqueda: minúsculas y sin tildes.
// La cadena vacía se normaliza a vacía (y como subcadena coincide con todo).
func NormalizeQuery(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

// MatchesQuery indica si alguno de los campos contiene el término normalizado.
func MatchesQuery(normalizedQuery string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(NormalizeQuery(f), normalizedQuery) {
			return true
		}
	}
	return false
}
