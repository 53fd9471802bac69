package fsutil

import (
	"strings"
	"unicode"
)

// limite de longueur du nom de fichier généré
const maxNameLen = 200

// caractères interdits dans un nom de fichier (Windows étant le plus strict)
const invalidFileRunes = `<>"/\|?*`

// SanitizeFilename transforme un titre de vidéo en nom de fichier sûr :
// ":" devient "-", les caractères interdits et de contrôle deviennent des
// espaces, les espaces sont normalisés, les points terminaux supprimés,
// la longueur bornée. Chaîne vide ou entièrement invalide -> "untitled".
func SanitizeFilename(name string) string {
	if name == "" {
		return "untitled"
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == ':':
			return '-'
		case r < 0x20 || strings.ContainsRune(invalidFileRunes, r):
			return ' '
		}
		return r
	}, name)

	// normalisation des espaces : découpe puis rejointure simple
	clean := strings.Join(strings.Fields(mapped), " ")
	clean = strings.TrimRight(clean, ".")

	if clean == "" {
		return "untitled"
	}
	if len(clean) > maxNameLen {
		clean = clean[:maxNameLen]
	}
	return CapitalizeFirst(clean)
}

// CapitalizeFirst met en majuscule la première rune de s, sans toucher au
// reste. Vide -> retourne "".
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
