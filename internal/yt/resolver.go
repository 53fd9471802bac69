package yt

import (
	"errors"
	"regexp"
	"strings"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// ErrNoVideoID signale qu'aucun motif d'URL n'a permis d'extraire un identifiant.
var ErrNoVideoID = errors.New("no video id found in url")

// Les motifs sont essayés dans l'ordre, le premier qui matche gagne.
// La capture s'arrête au premier '&', '?' ou '/' rencontré. Aucune validation
// de l'identifiant capturé : du bruit peut passer, les sources en aval
// échoueront proprement.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v=([^&?/]+)`),
	regexp.MustCompile(`/shorts/([^&?/]+)`),
	regexp.MustCompile(`/embed/([^&?/]+)`),
	regexp.MustCompile(`youtu\.be/([^&?/]+)`),
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]+)`),
}

// ResolveVideoID extrait l'identifiant vidéo d'une URL YouTube.
//
// Les URLs "shorts" voient leur query string retirée avant le matching :
// les motifs de forme supposent une fin d'URL propre. Retourne ErrNoVideoID
// si aucun motif ne matche.
func ResolveVideoID(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if strings.Contains(url, "shorts") {
		if i := strings.IndexByte(url, '?'); i >= 0 {
			url = url[:i]
		}
	}

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", ErrNoVideoID
}

// Resolve construit la référence vidéo complète : identifiant extrait +
// URL d'origine conservée pour le diagnostic.
func Resolve(raw string) (model.VideoRef, error) {
	id, err := ResolveVideoID(raw)
	if err != nil {
		return model.VideoRef{}, err
	}
	return model.VideoRef{ID: id, SourceURL: raw}, nil
}
