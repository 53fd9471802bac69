package model

import "fmt"

// Seconds est un alias explicite pour représenter une durée en secondes.
type Seconds int64

// TimestampHHMMSS formate Seconds en "HH:MM:SS" (toujours 2 chiffres par composant).
// Exemple : 65 -> "00:01:05", 3661 -> "01:01:01".
func (s Seconds) TimestampHHMMSS() string {
	total := int64(s)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// TimestampMMSS formate Seconds en "MM:SS" sans composante heures.
// Les minutes peuvent dépasser 59 : 3661 -> "61:01".
func (s Seconds) TimestampMMSS() string {
	total := int64(s)
	m := total / 60
	sec := total % 60
	return fmt.Sprintf("%02d:%02d", m, sec)
}

func (s Seconds) Milliseconds() int64 {
	return int64(s) * 1000
}

// constantes pour les formats de sous-titres et d'export
type Format string

const (
	FormatTXT      Format = "txt"
	FormatMARKDOWN Format = "md"
	FormatJSON3    Format = "json3"
	FormatSRT      Format = "srt"
	FormatVTT      Format = "vtt"
	FormatSRV1     Format = "srv1"
	FormatSRV2     Format = "srv2"
	FormatSRV3     Format = "srv3"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch s {
	case "txt":
		return FormatTXT, nil
	case "md":
		return FormatMARKDOWN, nil
	case "json3":
		return FormatJSON3, nil
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	case "srv1":
		return FormatSRV1, nil
	case "srv2":
		return FormatSRV2, nil
	case "srv3":
		return FormatSRV3, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

func (f Format) IsSubtitle() bool {
	switch f {
	case FormatJSON3, FormatSRT, FormatVTT, FormatSRV1, FormatSRV2, FormatSRV3:
		return true
	}
	return false
}

func (f Format) IsTextual() bool {
	return f == FormatTXT || f == FormatMARKDOWN
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}

// VideoRef identifie la vidéo ciblée par une extraction.
// ID est l'identifiant opaque extrait de l'URL, sans validation au-delà
// du motif ; SourceURL garde la chaîne d'origine pour le diagnostic.
type VideoRef struct {
	ID        string `json:"video_id"`
	SourceURL string `json:"source_url"`
}

func (v VideoRef) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

func (v VideoRef) String() string {
	return fmt.Sprintf("VideoRef(id=%s, source=%s)", v.ID, v.SourceURL)
}
