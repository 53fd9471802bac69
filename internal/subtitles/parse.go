package subtitles

import (
	"errors"
	"fmt"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

var ErrNoSubtitle = errors.New("no subtitle available for given source")

// Parse convertit un contenu de sous-titres dans le format indiqué en
// segments normalisés. Les formats srv* passent par le parseur VTT : un
// payload qui n'y ressemble pas donne zéro segment et l'appelant essaie
// le format candidat suivant.
func Parse(content string, format model.Format) ([]Segment, error) {
	switch format {
	case model.FormatVTT, model.FormatSRV1, model.FormatSRV2, model.FormatSRV3:
		return ParseVTT(content), nil
	case model.FormatSRT:
		return ParseSRT(content), nil
	case model.FormatJSON3:
		raw, err := ParseJSON3Bytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("Parse: %w", err)
		}
		return SegmentsFromJSON3(raw), nil
	default:
		return nil, fmt.Errorf("Parse: format non supporté: %s", format)
	}
}

// ParseFile choisit le parseur d'après l'extension du fichier téléchargé
// (".vtt" ou ".srt"). Les autres extensions ne sont pas des sous-titres
// exploitables ici.
func ParseFile(content string, ext string) ([]Segment, bool) {
	var format model.Format
	switch ext {
	case ".vtt":
		format = model.FormatVTT
	case ".srt":
		format = model.FormatSRT
	default:
		return nil, false
	}
	segs, err := Parse(content, format)
	if err != nil {
		return nil, false
	}
	return segs, true
}
