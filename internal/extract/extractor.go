// Package extract orchestre l'extraction d'un transcript : résolution de
// l'identifiant vidéo, tentative sur la source primaire, repli sur la
// source secondaire. Une tentative par source, pas de retry.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/subtitles"
	"github.com/patrickprogramme/studyscribe/internal/yt"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// Statuts lisibles retournés à l'appelant. L'échec est toujours porté par le
// statut, jamais par une panique ou une erreur non enveloppée.
const (
	StatusInvalidURL = "Invalid YouTube URL"
	StatusBothFailed = "Both transcript extraction methods failed"

	proxySuffix = " (with proxy)"
)

// Source est le contrat commun aux deux mécanismes d'acquisition.
// Fetch retourne les segments et la fiche vidéo disponible ; une erreur ou
// une liste vide valent échec de la source, au choix de l'implémentation.
type Source interface {
	Name() string
	Fetch(ctx context.Context, ref model.VideoRef) ([]subtitles.Segment, *model.Meta, error)
}

// Result est l'issue d'une invocation : soit OK avec des segments non vides,
// soit un statut d'échec. Jamais de segments vides avec OK.
type Result struct {
	Segments []subtitles.Segment
	Meta     *model.Meta
	Source   string // nom de la source qui a réussi
	Status   string
	OK       bool
}

// Extractor enchaîne les sources. Il ne fait aucune E/S lui-même : tout le
// réseau vit derrière les Source, ce qui permet de le tester à blanc.
type Extractor struct {
	Primary   Source
	Secondary Source
	WithProxy bool // uniquement pour le libellé de statut
}

func New(primary, secondary Source, withProxy bool) *Extractor {
	return &Extractor{Primary: primary, Secondary: secondary, WithProxy: withProxy}
}

// Extract résout l'URL puis tente les sources dans l'ordre. La première qui
// fournit des segments non vides gagne ; ses métadonnées sont complétées avec
// la référence résolue si besoin.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Result {
	ref, err := yt.Resolve(rawURL)
	if err != nil {
		return Result{Status: StatusInvalidURL}
	}

	for _, src := range []Source{e.Primary, e.Secondary} {
		if src == nil {
			continue
		}
		segs, meta, err := src.Fetch(ctx, ref)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Name()).Msg("échec de la source")
			continue
		}
		if len(segs) == 0 {
			log.Warn().Str("source", src.Name()).Msg("la source n'a retourné aucun segment")
			continue
		}
		return Result{
			Segments: segs,
			Meta:     e.ensureMeta(meta, ref),
			Source:   src.Name(),
			Status:   e.successStatus(src.Name()),
			OK:       true,
		}
	}

	return Result{Status: StatusBothFailed}
}

func (e *Extractor) successStatus(sourceName string) string {
	suffix := ""
	if e.WithProxy {
		suffix = proxySuffix
	}
	return fmt.Sprintf("Success using %s%s", sourceName, suffix)
}

// ensureMeta garantit une fiche minimale même quand la source n'en a pas
// fourni : référence résolue recollée si absente, date d'extraction posée.
func (e *Extractor) ensureMeta(meta *model.Meta, ref model.VideoRef) *model.Meta {
	if meta == nil {
		meta = &model.Meta{Ref: ref}
	}
	if meta.Ref.ID == "" {
		meta.Ref.ID = ref.ID
	}
	if meta.Ref.SourceURL == "" {
		meta.Ref.SourceURL = ref.SourceURL
	}
	if meta.ExtractedAt.IsZero() {
		meta.ExtractedAt = time.Now()
	}
	return meta
}
