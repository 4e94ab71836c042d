package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold приводит строку к виду для сравнения: нижний регистр, без диакритики, без крайних пробелов
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// NewCollator - французская сортировка без учёта регистра.
// Collator не потокобезопасен, поэтому создаётся на каждую сортировку.
func NewCollator() *collate.Collator {
	return collate.New(language.French, collate.IgnoreCase)
}
