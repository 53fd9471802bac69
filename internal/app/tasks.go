package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickprogramme/studyscribe/internal/clipboard"
	"github.com/patrickprogramme/studyscribe/internal/fsutil"
	"github.com/patrickprogramme/studyscribe/internal/notes"
	"github.com/patrickprogramme/studyscribe/internal/report"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// saveTranscript écrit la vue configurée (txt horodaté ou md en paragraphes)
// dans le dossier de sortie, sans écraser un fichier existant.
func (a *App) saveTranscript(ctx context.Context) {
	format, err := model.ParseFormat(a.cfg.TranscriptFormat)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("format de transcript invalide : %v", err))
		return
	}
	content, err := a.transcript.Render(format)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("rendu du transcript : %v", err))
		return
	}
	path, err := fsutil.SaveDocumentAtomic(
		a.cfg.OutputDir, a.documentBase(), format.Extension(), []byte(content), false)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("échec de la sauvegarde du transcript: %v", err))
		return
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Transcript écrit dans :\n%s", path))
}

// copyTranscript met la vue choisie dans le presse-papier.
func (a *App) copyTranscript(ctx context.Context) {
	view, err := a.ui.ReadLine(ctx, "Copier quelle vue ? (t) horodatée, (p) paragraphes, (b) brute [t] : ")
	if err != nil {
		return
	}

	var content string
	switch strings.ToLower(view) {
	case "", "t":
		content = a.transcript.Timestamped()
	case "p":
		content = a.transcript.Paragraphs()
	case "b":
		content = a.transcript.Collapsed()
	default:
		a.ui.PrintError(ctx, "Vue inconnue.")
		return
	}

	if err := clipboard.Copy(content); err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("copie impossible : %v", err))
		return
	}
	a.ui.PrintInfo(ctx, "Transcript copié dans le presse-papier.")
}

// saveNotes exporte le carnet complet en un document markdown.
func (a *App) saveNotes(ctx context.Context) {
	md := a.notes.Markdown()
	if md == "" {
		a.ui.PrintInfo(ctx, "Aucune note à sauvegarder.")
		return
	}
	path, err := fsutil.SaveDocumentAtomic(
		a.cfg.OutputDir, a.documentBase()+" - notes", ".md", []byte(md), false)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("échec de la sauvegarde des notes : %v", err))
		return
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Notes écrites dans :\n%s", path))
}

// saveReport assemble le rapport d'étude : fiche vidéo, dernier résumé IA,
// notes de session et transcript horodaté.
func (a *App) saveReport(ctx context.Context) {
	summary, sections := a.reportSections()
	data := report.NewReportData(a.meta, a.transcript.Source, summary, a.transcript.Timestamped(), sections)

	content, err := a.renderer.RenderReport(data)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("rendu du rapport : %v", err))
		return
	}
	path, err := fsutil.SaveDocumentAtomic(a.cfg.OutputDir, data.Filename, ".md", content, false)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("échec de la sauvegarde du rapport : %v", err))
		return
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Rapport d'étude écrit dans :\n%s", path))
}

// reportSections sépare le dernier résumé IA des autres notes : il alimente
// la section Summary du rapport, le reste devient des sections de notes.
func (a *App) reportSections() (summary string, sections []report.NoteSection) {
	var summaryID string
	for _, n := range a.notes.List() {
		if n.Kind == notes.KindSummary {
			summary = n.Content
			summaryID = n.ID
		}
	}
	for _, n := range a.notes.List() {
		if n.ID == summaryID {
			continue
		}
		sections = append(sections, report.NoteSection{
			Label:   n.Kind.Label(),
			TimeStr: n.CreatedAt.Format("2006-01-02 15:04"),
			Content: n.Content,
		})
	}
	return summary, sections
}

// documentBase donne la base de nom de fichier commune aux exports de la
// session.
func (a *App) documentBase() string {
	base := fsutil.SanitizeFilename(a.transcript.DisplayTitle())
	if strings.TrimSpace(base) == "" {
		base = "transcript"
	}
	return base
}
