package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/studyscribe/internal/ia"
	"github.com/patrickprogramme/studyscribe/internal/notes"
)

const sessionMenu = `
──────────────────────────────────────
  1) Transcript horodaté
  2) Transcript en paragraphes
  3) Rechercher dans le transcript
  4) Langues disponibles
  5) Résumé                  (IA)
  6) Citations clés          (IA)
  7) Guide d'étude           (IA)
  8) Questions / réponses    (IA)
  9) Flashcards              (IA)
 10) Points clés             (IA)
 11) Chat sur la vidéo       (IA)
 12) Notes de session
 13) Sauvegarder le transcript
 14) Copier dans le presse-papier
 15) Rapport d'étude
  q) Quitter
──────────────────────────────────────`

const msgAIDisabled = "Actions IA désactivées : définissez GEMINI_API_KEY (environnement ou fichier .env)."

// runSession boucle sur le menu de session jusqu'à la sortie de
// l'utilisateur, la fermeture de stdin ou l'annulation du contexte.
func (a *App) runSession(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.ui.PrintInfo(ctx, sessionMenu)
		choice, err := a.ui.ReadLine(ctx, "Votre choix : ")
		if err != nil {
			// stdin fermé : terminer proprement
			return nil
		}

		switch strings.ToLower(choice) {
		case "1":
			a.ui.PrintInfo(ctx, a.transcript.Timestamped())
		case "2":
			a.ui.PrintInfo(ctx, a.transcript.Paragraphs())
		case "3":
			a.searchTranscript(ctx)
		case "4":
			a.showLanguages(ctx)
		case "5":
			a.runAIOp(ctx, notes.KindSummary)
		case "6":
			a.runAIOp(ctx, notes.KindQuotes)
		case "7":
			a.runAIOp(ctx, notes.KindStudyGuide)
		case "8":
			a.runAIOp(ctx, notes.KindQA)
		case "9":
			a.runAIOp(ctx, notes.KindFlashcards)
		case "10":
			a.runAIOp(ctx, notes.KindInsights)
		case "11":
			a.runChat(ctx)
		case "12":
			a.manageNotes(ctx)
		case "13":
			a.saveTranscript(ctx)
		case "14":
			a.copyTranscript(ctx)
		case "15":
			a.saveReport(ctx)
		case "q", "quit", "quitter":
			a.ui.PrintInfo(ctx, "À bientôt.")
			return nil
		case "":
			// Entrée seule : réafficher le menu
		default:
			a.ui.PrintError(ctx, fmt.Sprintf("Choix inconnu : %q", choice))
		}
	}
}

// runAIOp exécute une action IA simple (un prompt, une réponse), affiche le
// résultat en markdown et propose de l'ajouter aux notes de session.
func (a *App) runAIOp(ctx context.Context, kind notes.Kind) {
	if a.ai == nil {
		a.ui.PrintInfo(ctx, msgAIDisabled)
		return
	}

	var op func(context.Context, string) (string, error)
	switch kind {
	case notes.KindSummary:
		op = a.ai.Summary
	case notes.KindQuotes:
		op = a.ai.KeyQuotes
	case notes.KindStudyGuide:
		op = a.ai.StudyGuide
	case notes.KindQA:
		op = a.ai.QuestionsAnswers
	case notes.KindFlashcards:
		op = a.ai.Flashcards
	case notes.KindInsights:
		op = a.ai.Insights
	default:
		return
	}

	a.ui.PrintInfo(ctx, fmt.Sprintf("Génération de %s en cours...", kind.Label()))
	out, err := op(ctx, a.transcript.Collapsed())
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("❌ Génération impossible : %v", err))
		return
	}

	a.ui.PrintMarkdown(ctx, out)
	if a.ui.Confirm(ctx, "Ajouter aux notes de session ? [o/n] : ") {
		a.notes.Add(kind, out)
		a.ui.PrintInfo(ctx, fmt.Sprintf("Note ajoutée (%d au total).", a.notes.Len()))
	}
}

// runChat enchaîne questions et réponses sur le transcript. Les cinq
// derniers échanges sont renvoyés au modèle comme contexte.
func (a *App) runChat(ctx context.Context) {
	if a.ai == nil {
		a.ui.PrintInfo(ctx, msgAIDisabled)
		return
	}

	a.ui.PrintInfo(ctx, "Chat sur la vidéo. Ligne vide pour revenir au menu.")
	for {
		question, err := a.ui.ReadLine(ctx, "Question : ")
		if err != nil || question == "" {
			return
		}
		answer, err := a.ai.Chat(ctx, a.transcript.Collapsed(), question, a.history)
		if err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("❌ Réponse impossible : %v", err))
			continue
		}
		a.ui.PrintMarkdown(ctx, answer)
		a.history = append(a.history, ia.Exchange{Question: question, Answer: answer})
	}
}

func (a *App) searchTranscript(ctx context.Context) {
	term, err := a.ui.ReadLine(ctx, "Terme à rechercher : ")
	if err != nil || term == "" {
		return
	}
	matches := a.transcript.Search(term)
	if len(matches) == 0 {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Aucun segment ne contient %q.", term))
		return
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d segment(s) trouvé(s) :", len(matches)))
	for _, s := range matches {
		a.ui.PrintInfo(ctx, s.Timestamp()+" "+s.Text)
	}
}

// showLanguages affiche le catalogue de pistes connues. Il n'est rempli que
// quand la source a fourni la fiche complète.
func (a *App) showLanguages(ctx context.Context) {
	if !a.meta.HasManualSubs() && !a.meta.HasAutoSubs() {
		a.ui.PrintInfo(ctx, "Catalogue de langues indisponible pour cette vidéo.")
		return
	}
	manual, auto := a.meta.Langs()
	format := func(list []string) string {
		if len(list) == 0 {
			return "(aucune)"
		}
		return strings.Join(list, ", ")
	}
	a.ui.PrintInfo(ctx, "Sous-titres manuels      : "+format(manual))
	a.ui.PrintInfo(ctx, "Sous-titres automatiques : "+format(auto))
}

// manageNotes est le sous-menu du carnet de session.
func (a *App) manageNotes(ctx context.Context) {
	for {
		list := a.notes.List()
		if len(list) == 0 {
			a.ui.PrintInfo(ctx, "Aucune note pour l'instant.")
		} else {
			a.ui.PrintInfo(ctx, fmt.Sprintf("Notes de session (%d) :", len(list)))
			for i, n := range list {
				a.ui.PrintInfo(ctx, fmt.Sprintf(" %2d. [%s] %s — %s",
					i+1, n.Kind.Label(), n.CreatedAt.Format("15:04:05"), notePreview(n.Content)))
			}
		}

		input, err := a.ui.ReadLine(ctx,
			"(a) ajouter  (v N) voir  (d N) supprimer  (x) tout effacer  (s) sauvegarder  (Entrée) retour : ")
		if err != nil || input == "" {
			return
		}

		fields := strings.Fields(strings.ToLower(input))
		switch fields[0] {
		case "a":
			text, err := a.ui.ReadLine(ctx, "Texte de la note : ")
			if err != nil || strings.TrimSpace(text) == "" {
				continue
			}
			a.notes.Add(notes.KindManual, text)
		case "v":
			if n, ok := noteAt(list, fields); ok {
				a.ui.PrintMarkdown(ctx, n.Content)
			} else {
				a.ui.PrintError(ctx, "Numéro de note invalide.")
			}
		case "d":
			if n, ok := noteAt(list, fields); ok {
				a.notes.Remove(n.ID)
				a.ui.PrintInfo(ctx, "Note supprimée.")
			} else {
				a.ui.PrintError(ctx, "Numéro de note invalide.")
			}
		case "x":
			if a.ui.Confirm(ctx, "Effacer toutes les notes ? [o/n] : ") {
				a.notes.Clear()
			}
		case "s":
			a.saveNotes(ctx)
		default:
			a.ui.PrintError(ctx, "Action inconnue.")
		}
	}
}

// noteAt retrouve la note désignée par un numéro 1-based dans fields[1].
func noteAt(list []notes.Note, fields []string) (notes.Note, bool) {
	if len(fields) < 2 {
		return notes.Note{}, false
	}
	i, err := strconv.Atoi(fields[1])
	if err != nil || i < 1 || i > len(list) {
		return notes.Note{}, false
	}
	return list[i-1], true
}

// notePreview compacte le contenu sur une ligne courte pour la liste.
func notePreview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const max = 60
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return s
}
