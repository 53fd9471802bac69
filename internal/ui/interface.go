package ui

import (
	"context"
)

// Interface découple l'application du terminal pour les tests.
type Interface interface {
	// GetYtURL doit renvoyer une URL valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetYtURL(ctx context.Context) (string, error)

	// ReadLine affiche l'invite puis retourne la ligne saisie, sans
	// espaces de tête ni de queue. Erreur sur stdin fermé (Ctrl+D).
	ReadLine(ctx context.Context, prompt string) (string, error)

	// Confirm pose une question fermée. Réponses acceptées : o/oui/y/yes.
	// Toute autre saisie (ou une erreur de lecture) vaut non.
	Confirm(ctx context.Context, prompt string) bool

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// PrintMarkdown affiche du markdown rendu pour le terminal.
	// Texte brut si NO_COLOR est défini ou si le rendu échoue.
	PrintMarkdown(ctx context.Context, md string)
}
