package subtitles

import "strings"

// ParseSRT convertit un contenu SRT en segments normalisés.
//
// Format bloc : les blocs sont séparés par une ligne vide. Un bloc valide a
// au moins trois lignes : numéro de séquence (ignoré), horodatage
// "HH:MM:SS,mmm --> HH:MM:SS,mmm", puis le texte sur une ou plusieurs
// lignes jointes par un espace simple et débarrassées des balises. Les
// blocs incomplets ou sans horodatage lisible sont ignorés.
func ParseSRT(content string) []Segment {
	var segments []Segment
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		// lines[0] : numéro de séquence, ignoré
		timestampLine := lines[1]
		if !strings.Contains(timestampLine, "-->") {
			continue
		}
		parts := strings.Split(timestampLine, " --> ")
		if len(parts) != 2 {
			continue
		}
		start := parseSRTTimestamp(parts[0])
		end := parseSRTTimestamp(parts[1])

		var texts []string
		for _, l := range lines[2:] {
			if t := strings.TrimSpace(l); t != "" {
				texts = append(texts, t)
			}
		}
		text := stripTags(strings.Join(texts, " "))
		if text == "" {
			continue
		}

		segments = append(segments, Segment{
			Text:     text,
			Start:    start,
			Duration: end - start,
		})
	}

	return segments
}
