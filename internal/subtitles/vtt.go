package subtitles

import "strings"

// ParseVTT convertit un contenu WebVTT en segments normalisés.
//
// Parcours ligne à ligne : on saute les entêtes (WEBVTT, Kind:, Language:)
// et les lignes vides, puis sur une ligne d'horodatage "start --> end" on
// accumule les lignes de texte qui suivent jusqu'à la première ligne vide.
// Les balises inline (<c>, <i>, ...) sont retirées, les lignes jointes par
// un espace simple. Une cue au texte vide n'est pas émise ; une ligne
// d'horodatage illisible est ignorée et le parcours reprend à la ligne
// suivante.
func ParseVTT(content string) []Segment {
	var segments []Segment
	lines := strings.Split(content, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" ||
			strings.HasPrefix(line, "WEBVTT") ||
			strings.HasPrefix(line, "Kind:") ||
			strings.HasPrefix(line, "Language:") {
			i++
			continue
		}

		if strings.Contains(line, "-->") {
			parts := strings.Split(line, " --> ")
			if len(parts) == 2 {
				start := parseVTTTimestamp(parts[0])
				end := parseVTTTimestamp(parts[1])

				// texte de la cue : les lignes non vides qui suivent
				var texts []string
				i++
				for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
					text := stripTags(strings.TrimSpace(lines[i]))
					if text != "" {
						texts = append(texts, text)
					}
					i++
				}

				if len(texts) > 0 {
					segments = append(segments, Segment{
						Text:     strings.Join(texts, " "),
						Start:    start,
						Duration: end - start,
					})
				}
			}
		}

		i++
	}

	return segments
}
