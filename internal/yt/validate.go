package yt

import "regexp"

var ytRegex = regexp.MustCompile(`(?i)https?://(www\.)?(youtube\.com/(watch\?v=|shorts/|embed/)|youtu\.be/)`)

// IsYouTubeURL indique si s ressemble à une URL YouTube connue.
// Plus strict que le resolver : sert au tri des candidats (presse-papiers),
// pas à l'extraction.
func IsYouTubeURL(s string) bool {
	return ytRegex.MatchString(s)
}
