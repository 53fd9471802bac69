package model

import (
	"fmt"
	"strings"
	"time"
)

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown   SubSource = "unknown"
	SubSourceAutomatic SubSource = "automatic"
	SubSourceManual    SubSource = "manual"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	default:
		return "unknown subtitles"
	}
}

// Chapter représente un chapitre d'une vidéo avec un timestamp et un titre.
type Chapter struct {
	Start Seconds `json:"start"`
	Title string  `json:"title"`
}

// SubtitleTrack décrit une piste de sous-titres associée à une vidéo.
type SubtitleTrack struct {
	Lang   string    `json:"lang"`
	Format Format    `json:"format,omitempty"`
	URL    string    `json:"url,omitempty"`
	Source SubSource `json:"source,omitempty"`
}

func (s SubtitleTrack) String() string {
	return fmt.Sprintf("SubtitleTrack(lang=%s, format=%s, source=%s)", s.Lang, s.Format, s.Source)
}

// Meta regroupe les métadonnées connues d'une vidéo au moment de l'extraction.
// Les champs au-delà de Ref/Title/Duration ne sont remplis que si la source
// secondaire a fourni la fiche complète.
type Meta struct {
	Ref         VideoRef        `json:"ref"`
	Title       string          `json:"title"`
	Duration    Seconds         `json:"duration,omitempty"`
	ExtractedAt time.Time       `json:"extracted_at"`
	Uploader    string          `json:"uploader,omitempty"`
	UploadDate  time.Time       `json:"upload_date,omitempty"`
	Description string          `json:"description,omitempty"`
	Chapters    []Chapter       `json:"chapters,omitempty"`
	AutoSubs    []SubtitleTrack `json:"subtitles,omitempty"`
	ManualSubs  []SubtitleTrack `json:"manual_subtitles,omitempty"`
}

func (m Meta) HasManualSubs() bool {
	return len(m.ManualSubs) != 0
}

func (m Meta) HasAutoSubs() bool {
	return len(m.AutoSubs) != 0
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Duration=%s, Chapters=%d, Subtitles=%d]",
		m.Ref.ID, m.Title, m.Duration.TimestampHHMMSS(),
		len(m.Chapters), len(m.AutoSubs)+len(m.ManualSubs))
}

// Langs retourne les codes langues présents dans les deux catalogues,
// manuels d'abord, sans doublon.
func (m Meta) Langs() (manual, auto []string) {
	seen := make(map[string]struct{})
	collect := func(tracks []SubtitleTrack) []string {
		out := make([]string, 0, len(tracks))
		for _, t := range tracks {
			if t.Lang == "" {
				continue
			}
			if _, ok := seen[t.Lang]; ok {
				continue
			}
			seen[t.Lang] = struct{}{}
			out = append(out, t.Lang)
		}
		return out
	}
	manual = collect(m.ManualSubs)
	auto = collect(m.AutoSubs)
	return manual, auto
}

// Pretty retourne une fiche multi-lignes simple, affichée après extraction.
// Elle montre les langues présentes dans AutoSubs et ManualSubs
// en les listant telles qu'elles apparaissent dans les SubtitleTrack.
func (m Meta) Pretty() string {
	title := m.Title
	if title == "" {
		title = "<unknown>"
	}

	durStr := "<unknown>"
	if m.Duration > 0 {
		durStr = m.Duration.TimestampHHMMSS()
	}

	extractedStr := "<unknown>"
	if !m.ExtractedAt.IsZero() {
		extractedStr = m.ExtractedAt.Format("2006-01-02 15:04:05")
	}

	formatLangs := func(list []string) string {
		if len(list) == 0 {
			return "(aucun)"
		}
		return strings.Join(list, ", ")
	}
	manual, auto := m.Langs()

	return fmt.Sprintf(
		"Video:\n"+
			"  ID         : %s\n"+
			"  URL        : %s\n"+
			"  Title      : %q\n"+
			"  Duration   : %s\n"+
			"  Extracted  : %s\n"+
			"  ManualSubs : %s\n"+
			"  AutoSubs   : %s\n",
		m.Ref.ID,
		m.Ref.SourceURL,
		title,
		durStr,
		extractedStr,
		formatLangs(manual),
		formatLangs(auto),
	)
}
