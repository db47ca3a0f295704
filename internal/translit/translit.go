// Package translit maps Cyrillic text to a Latin-safe ASCII form using a
// fixed character table. Every letter of the 33-letter alphabet maps to
// one deterministic sequence and no two letters of the same case share
// one, so transliteration of the same input always yields the same
// output. The soft and hard signs are the one place case is folded:
// they carry no case of their own, so 'ь' and 'Ь' share the marker "'"
// and 'ъ' and 'Ъ' share "''".
package translit

import "strings"

// Alphabet identifies the source alphabet of a text.
type Alphabet int

const (
	// AlphabetAuto asks Transliterate to detect the alphabet itself.
	AlphabetAuto Alphabet = iota

	// AlphabetRussian is Cyrillic as used by Russian. It is also the
	// fallback when detection fails or reports an unsupported alphabet.
	AlphabetRussian

	// AlphabetLatin passes text through unchanged.
	AlphabetLatin
)

// russian is the fixed Cyrillic-to-ASCII table. The soft sign maps to
// "'" and the hard sign to "''" so the two stay distinct; both sign
// markers are case-folded, and identifier sanitisation strips them
// later anyway.
var russian = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "jo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "''", 'ы': "y", 'ь': "'",
	'э': "eh", 'ю': "ju", 'я': "ja",
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D",
	'Е': "E", 'Ё': "Jo", 'Ж': "Zh", 'З': "Z", 'И': "I",
	'Й': "J", 'К': "K", 'Л': "L", 'М': "M", 'Н': "N",
	'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T",
	'У': "U", 'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch",
	'Ш': "Sh", 'Щ': "Sch", 'Ъ': "''", 'Ы': "Y", 'Ь': "'",
	'Э': "Eh", 'Ю': "Ju", 'Я': "Ja",
}

// Detect inspects the text and reports its alphabet. Texts with any
// Cyrillic letters are Russian; pure ASCII/Latin texts are Latin; texts
// with no recognisable letters fall back to Russian, matching the
// fail-open behaviour of the ingestion pipeline.
func Detect(text string) Alphabet {
	var cyrillic, latin int
	for _, r := range text {
		switch {
		case r >= 0x0400 && r <= 0x04FF:
			cyrillic++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}
	if cyrillic > 0 {
		return AlphabetRussian
	}
	if latin > 0 {
		return AlphabetLatin
	}
	return AlphabetRussian
}

// Transliterate converts text from the given alphabet to ASCII. Runes
// outside the table, including digits and ASCII punctuation, pass
// through unchanged. The empty string maps to the empty string.
func Transliterate(text string, alphabet Alphabet) string {
	if text == "" {
		return ""
	}
	if alphabet == AlphabetAuto {
		alphabet = Detect(text)
	}
	if alphabet == AlphabetLatin {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if mapped, ok := russian[r]; ok {
			b.WriteString(mapped)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
