package subtitles

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// paragraphMaxSegments : nombre de segments accumulés avant de forcer une
// coupure de paragraphe quand aucune fin de phrase n'arrive.
const paragraphMaxSegments = 3

// Transcript porte les segments normalisés d'une vidéo plus le contexte
// utile aux vues : titre, référence vidéo, source ayant réussi, chapitres.
type Transcript struct {
	Title    string
	Ref      model.VideoRef
	Source   string // nom de la source qui a fourni les segments
	Segments []Segment
	Chapters []model.Chapter
}

// NewTranscript construit un Transcript à partir de données déjà prêtes.
// - pure function, pas d'I/O ni de parsing.
func NewTranscript(title string, ref model.VideoRef, source string, segments []Segment, chapters []model.Chapter) Transcript {
	return Transcript{
		Title:    title,
		Ref:      ref,
		Source:   source,
		Segments: segments,
		Chapters: chapters,
	}
}

// Timestamped retourne la vue horodatée : une ligne "[MM:SS] texte" par segment.
func (t Transcript) Timestamped() string {
	if len(t.Segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range t.Segments {
		b.WriteString(s.Timestamp())
		b.WriteByte(' ')
		b.WriteString(s.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Collapsed retourne tout le texte sur une seule ligne, segments joints par
// des espaces simples. C'est la forme envoyée au modèle.
func (t Transcript) Collapsed() string {
	if len(t.Segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// paragraph : bloc de texte + timestamp du premier segment, interne aux vues.
type paragraph struct {
	startMs int64
	text    string
}

// buildParagraphs groupe les segments en paragraphes : coupure après un
// segment dont le texte clôt une phrase (fermantes tolérées), ou après
// paragraphMaxSegments segments accumulés, la première condition l'emporte.
func (t Transcript) buildParagraphs() []paragraph {
	var paras []paragraph
	var current []string
	var startMs int64 = -1

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(current, " "))
		if text != "" {
			ms := startMs
			if ms < 0 {
				ms = 0
			}
			paras = append(paras, paragraph{startMs: ms, text: text})
		}
		current = current[:0]
		startMs = -1
	}

	for _, s := range t.Segments {
		if startMs < 0 {
			startMs = s.StartMs()
		}
		current = append(current, strings.TrimSpace(s.Text))
		if endsSentence(s.Text) || len(current) >= paragraphMaxSegments {
			flush()
		}
	}
	flush()
	return paras
}

// Paragraphs retourne la vue paragraphe. Si des chapitres existent, leurs
// titres sont intercalés par timestamp (voir merge_chapters.go).
func (t Transcript) Paragraphs() string {
	if len(t.Segments) == 0 {
		return ""
	}
	if len(t.Chapters) == 0 {
		paras := t.buildParagraphs()
		blocks := make([]string, 0, len(paras))
		for _, p := range paras {
			blocks = append(blocks, p.text)
		}
		return strings.Join(blocks, "\n\n") + "\n"
	}
	return t.paragraphsWithChapters(0)
}

// Search retourne les segments dont le texte contient term, sans tenir
// compte de la casse. Un terme vide ne matche rien.
func (t Transcript) Search(term string) []Segment {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	var out []Segment
	for _, s := range t.Segments {
		if strings.Contains(strings.ToLower(s.Text), needle) {
			out = append(out, s)
		}
	}
	return out
}

// Render retourne le contenu du transcript pour un format textuel donné :
// txt = vue horodatée, md = titre + vue paragraphe.
func (t Transcript) Render(format model.Format) (string, error) {
	if !format.IsTextual() {
		return "", fmt.Errorf("format non supporté dans Render: %s", format)
	}
	if format == model.FormatMARKDOWN {
		return "# " + t.DisplayTitle() + "\n\n" + t.Paragraphs(), nil
	}
	return t.Timestamped(), nil
}

// DisplayTitle retourne le titre, ou sinon l'ID de la vidéo.
func (t Transcript) DisplayTitle() string {
	if s := strings.TrimSpace(t.Title); s != "" {
		return s
	}
	if t.Ref.ID != "" {
		return t.Ref.ID
	}
	return "transcript"
}
