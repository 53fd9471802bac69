package subtitles

import "github.com/patrickprogramme/studyscribe/pkg/model"

// Segment représente une unité de transcript normalisée : un texte débarrassé
// des balises, un début et une durée en secondes.
//
// Invariants :
//   - Text non vide (les parseurs n'émettent jamais de segment vide)
//   - l'ordre de la source est préservé, jamais re-trié
//   - Duration peut être nulle (certaines pistes n'en fournissent pas)
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// StartMs retourne le début du segment en millisecondes entières,
// pratique pour la fusion avec les chapitres (model.Chapter.Start).
func (s Segment) StartMs() int64 {
	return int64(s.Start * 1000)
}

// StartSeconds retourne le début tronqué à la seconde, pour l'affichage.
func (s Segment) StartSeconds() model.Seconds {
	return model.Seconds(int64(s.Start))
}

// Timestamp retourne le début au format "[MM:SS]" pour la vue horodatée.
// Les minutes peuvent dépasser 59 sur les vidéos longues.
func (s Segment) Timestamp() string {
	return "[" + s.StartSeconds().TimestampMMSS() + "]"
}
