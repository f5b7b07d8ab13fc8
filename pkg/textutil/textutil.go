// Package textutil normaliza texto de búsqueda: los filtros de los listados
// deben coincidir sin importar mayúsculas ni tildes ("camión" == "CAMION").
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // elimina marcas diacríticas
	norm.NFC,
)

// FoldSearch prepara un filtro de búsqueda: recorta espacios, quita tildes
// y pasa a minúsculas. El resultado se usa en comparaciones ILIKE.
func FoldSearch(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
