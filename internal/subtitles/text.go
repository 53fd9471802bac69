package subtitles

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// text.go : petites aides texte partagées par les parseurs et les vues.

// tagRe capture les balises inline (<c>, <i>, <00:00:01.000>, ...) présentes
// dans le texte des cues.
var tagRe = regexp.MustCompile(`<[^>]+>`)

// stripTags retire les balises inline du texte d'une cue.
func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// normalizeWhitespace nettoie les espaces : un seul espace entre mots,
// aucun en début ni en fin.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// closerRunes : guillemets et parenthèses fermantes qui peuvent suivre une
// ponctuation finale sans la masquer.
const closerRunes = `"'”’)]}»`

// endsSentence indique si le texte se termine par une fin de phrase (. ! ?),
// en tolérant espaces, guillemets et parenthèses fermantes accolés.
// Les octets invalides en fin de chaîne sont ignorés.
func endsSentence(s string) bool {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		switch {
		case r == utf8.RuneError && size == 1:
			// octet invalide, on le saute
		case unicode.IsSpace(r) || strings.ContainsRune(closerRunes, r):
			// on continue vers la gauche
		default:
			return r == '.' || r == '!' || r == '?'
		}
		s = s[:len(s)-size]
	}
	return false
}
