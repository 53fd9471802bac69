// Package notes garde les notes d'une session d'étude : contenus générés
// par l'IA et annotations manuelles. Stockage en mémoire, possédé par la
// session, rien de global ni de persistant.
package notes

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifie la nature d'une note.
type Kind string

const (
	KindSummary    Kind = "summary"
	KindQuotes     Kind = "quotes"
	KindStudyGuide Kind = "study_guide"
	KindQA         Kind = "qa"
	KindFlashcards Kind = "flashcards"
	KindInsights   Kind = "insights"
	KindManual     Kind = "manual"
)

// Label retourne le libellé d'affichage d'un type de note.
func (k Kind) Label() string {
	switch k {
	case KindSummary:
		return "Summary"
	case KindQuotes:
		return "Key Quotes"
	case KindStudyGuide:
		return "Study Guide"
	case KindQA:
		return "Q&A"
	case KindFlashcards:
		return "Flash Cards"
	case KindInsights:
		return "Highlights"
	case KindManual:
		return "Note"
	default:
		return string(k)
	}
}

// Note est une entrée du carnet de session.
type Note struct {
	ID        string
	Kind      Kind
	Content   string
	CreatedAt time.Time
}

// Store conserve les notes en ordre de création. Zéro valeur utilisable.
type Store struct {
	notes []Note
}

func NewStore() *Store {
	return &Store{}
}

// Add enregistre une note et retourne l'entrée créée (ID inclus).
func (s *Store) Add(kind Kind, content string) Note {
	n := Note{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.notes = append(s.notes, n)
	return n
}

// Get retourne la note d'identifiant donné, false si absente.
func (s *Store) Get(id string) (Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// List retourne une copie des notes en ordre de création.
func (s *Store) List() []Note {
	if len(s.notes) == 0 {
		return nil
	}
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Remove supprime la note d'identifiant donné. Retourne false si absente.
func (s *Store) Remove(id string) bool {
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Clear() {
	s.notes = nil
}

func (s *Store) Len() int {
	return len(s.notes)
}

// Markdown exporte toutes les notes en un seul document, une section par
// note, horodatage en en-tête de section.
func (s *Store) Markdown() string {
	if len(s.notes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("# Notes\n")
	for _, n := range s.notes {
		sb.WriteString("\n## ")
		sb.WriteString(n.Kind.Label())
		sb.WriteString(" (")
		sb.WriteString(n.CreatedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString(")\n\n")
		sb.WriteString(strings.TrimSpace(n.Content))
		sb.WriteString("\n")
	}
	return sb.String()
}
