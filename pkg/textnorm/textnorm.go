// Package textnorm normaliza texto para búsquedas sin distinguir acentos.
// El término se pliega en Go y las columnas con unaccent() en SQL, así los
// dos lados de la comparación quedan en la misma forma.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas y sin marcas diacríticas
// ("Electrónica" → "electronica"). Si la transformación falla, devuelve el
// texto en minúsculas sin plegar.
func Fold(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
