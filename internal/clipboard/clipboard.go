// Package clipboard isole l'accès au presse-papier système pour le reste de
// l'application : suggestion d'URL à l'entrée, copie des vues et des
// productions IA à la sortie.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Current retourne le contenu texte actuel du presse-papier.
func Current() (string, error) {
	return clipboard.ReadAll()
}

// Copy place text dans le presse-papier. Copier une chaîne vide est refusé :
// c'est toujours une erreur de l'appelant.
func Copy(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}
