// Package report assemble le rapport d'étude markdown d'une session :
// frontmatter vidéo, résumé IA, notes et transcript, rendus au travers d'un
// template embarqué, remplaçable par une copie exportée sur disque.
package report

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/patrickprogramme/studyscribe/internal/fsutil"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// rawTagRe : match un hashtag #suivi_dun_mot.
// - capture (grp[1]) le texte sans le `#`
// - autorise lettres Unicode (\p{L}), chiffres (\p{N}), underscore et tiret
var rawTagRe = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)

var baseTags = []string{"youtube", "study"}

// NoteSection est une note de session prête pour le template.
type NoteSection struct {
	Label   string
	TimeStr string
	Content string
}

// ReportData contient les données "brutes" pour le rapport d'étude.
type ReportData struct {
	URL          string
	Title        string
	Uploader     string
	DateStr      string // formaté YYYY-MM-DD
	Duration     string // formaté HH:MM:SS
	Source       string // méthode d'extraction qui a fourni les segments
	GeneratedStr string
	Langs        []string // langues de sous-titres disponibles
	Tags         []string
	Hashtags     []string
	Description  string
	Chapters     []model.Chapter
	Summary      string
	Notes        []NoteSection
	Transcript   string
	Filename     string
}

// NewReportData construit ReportData à partir de model.Meta et du contenu de
// la session (résumé IA, vue transcript, notes).
func NewReportData(m *model.Meta, source, summary, transcript string, notes []NoteSection) ReportData {
	var suffixe string
	dateStr := "unknown"
	if !m.UploadDate.IsZero() {
		dateStr = m.UploadDate.Format("2006-01-02")
		suffixe = dateStr
	} else {
		suffixe = m.Ref.ID
	}

	base := fsutil.SanitizeFilename(m.Title)
	filename := strings.TrimSpace(fmt.Sprintf("%s %s", base, suffixe))

	return ReportData{
		URL:          m.Ref.WatchURL(),
		Title:        fsutil.CapitalizeFirst(m.Title),
		Uploader:     m.Uploader,
		DateStr:      dateStr,
		Duration:     m.Duration.TimestampHHMMSS(),
		Source:       source,
		GeneratedStr: time.Now().Format("2006-01-02 15:04"),
		Langs:        availableLangs(m),
		Tags:         baseTags,
		Hashtags:     findRawTags(m.Description),
		Description:  m.Description,
		Chapters:     m.Chapters,
		Summary:      summary,
		Notes:        notes,
		Transcript:   transcript,
		Filename:     filename,
	}
}

// availableLangs fusionne les langues manuelles et automatiques, sans
// doublon, manuelles d'abord.
func availableLangs(m *model.Meta) []string {
	manual, auto := m.Langs()
	seen := make(map[string]bool, len(manual)+len(auto))
	out := make([]string, 0, len(manual)+len(auto))
	for _, l := range append(manual, auto...) {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// findRawTags trouve tous les hastags mentionnés dans une chaine, et les retourne en []string
func findRawTags(text string) []string {
	if text == "" {
		return nil
	}
	// Décodage HTML entités. Exemple Caf&eacute -> Café
	text = html.UnescapeString(text)

	matches := rawTagRe.FindAllStringSubmatch(text, -1)

	tags := make([]string, 0, len(matches))
	for _, grp := range matches {
		// grp[1] = contenu sans le #
		word := strings.ToLower(grp[1])
		tags = append(tags, word)
		if len(tags) > 64 {
			break
		}
	}
	return tags
}
