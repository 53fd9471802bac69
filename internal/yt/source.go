package yt

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/fetch"
	"github.com/patrickprogramme/studyscribe/internal/fsutil"
	"github.com/patrickprogramme/studyscribe/internal/subtitles"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

const trackFetchTimeout = 30 * time.Second

// Préférence de formats quand on télécharge une piste directement depuis
// son URL de catalogue.
var trackFormatPrefs = []model.Format{
	model.FormatVTT,
	model.FormatSRV3,
	model.FormatSRV2,
	model.FormatSRV1,
	model.FormatSRT,
}

// Source encapsule le binaire yt-dlp derrière le contrat de source de
// sous-titres : fiche complète via -j, puis téléchargement des pistes.
// HTTPClient sert aux téléchargements directs (catalogue) ; nil -> client
// direct sans proxy.
type Source struct {
	Client     Interface
	HTTPClient *http.Client
	Langs      []string
}

func NewSource(client Interface, httpClient *http.Client, langs []string) *Source {
	return &Source{Client: client, HTTPClient: httpClient, Langs: langs}
}

func (s *Source) Name() string { return "yt-dlp" }

// Fetch déroule l'extraction complète :
//  1. yt-dlp -j -> métadonnées + catalogue de pistes
//  2. yt-dlp --write-subs dans un répertoire temporaire, premier fichier
//     .vtt/.srt exploitable gagne
//  3. repli : téléchargement direct d'une piste du catalogue, langues
//     préférées d'abord (manuelles avant automatiques), sinon première
//     langue disponible
//
// La fiche Meta est retournée même quand aucun segment n'a pu être obtenu.
func (s *Source) Fetch(ctx context.Context, ref model.VideoRef) ([]subtitles.Segment, *model.Meta, error) {
	url := ref.SourceURL
	if url == "" {
		url = ref.WatchURL()
	}

	raw, err := s.Client.ExtractRaw(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction métadonnées : %w", err)
	}
	raw.LogWarnings()

	meta, err := ParseYTDLP(raw.JSON)
	if err != nil {
		return nil, nil, fmt.Errorf("analyse métadonnées : %w", err)
	}
	meta.Ref.SourceURL = ref.SourceURL
	if meta.Ref.ID == "" {
		meta.Ref.ID = ref.ID
	}
	meta.ExtractedAt = time.Now()

	tempDir, err := os.MkdirTemp("", "studyscribe-subs-*")
	if err != nil {
		return nil, meta, fmt.Errorf("création répertoire temporaire : %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := s.Client.DownloadSubtitles(ctx, url, tempDir, s.Langs); err != nil {
		return nil, meta, fmt.Errorf("téléchargement sous-titres : %w", err)
	}

	if segs := scanSubtitleFiles(tempDir); len(segs) > 0 {
		return segs, meta, nil
	}

	// Repli sur le catalogue : la première langue trouvée est définitive,
	// même si son téléchargement ne donne rien.
	tracks := s.pickTracks(meta)
	if len(tracks) == 0 {
		return nil, meta, subtitles.ErrNoSubtitle
	}
	segs := s.downloadTrack(ctx, tracks, tempDir)
	if len(segs) == 0 {
		return nil, meta, subtitles.ErrNoSubtitle
	}
	return segs, meta, nil
}

// pickTracks choisit les pistes d'une seule langue : langues préférées en
// ordre (manuelles avant automatiques pour chaque langue), puis première
// langue manuelle du catalogue, puis première langue automatique.
func (s *Source) pickTracks(meta *model.Meta) []model.SubtitleTrack {
	for _, lang := range s.Langs {
		if tracks := TracksForLang(meta.ManualSubs, lang); len(tracks) > 0 {
			return tracks
		}
		if tracks := TracksForLang(meta.AutoSubs, lang); len(tracks) > 0 {
			return tracks
		}
	}
	if lang := FirstLang(meta.ManualSubs); lang != "" {
		return TracksForLang(meta.ManualSubs, lang)
	}
	if lang := FirstLang(meta.AutoSubs); lang != "" {
		return TracksForLang(meta.AutoSubs, lang)
	}
	return nil
}

// scanSubtitleFiles parcourt les fichiers déposés par yt-dlp et retourne les
// segments du premier fichier exploitable.
func scanSubtitleFiles(dir string) []subtitles.Segment {
	files, err := fsutil.MatchingFiles(dir, []string{"*.vtt", "*.srt"})
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("parcours du répertoire de sous-titres impossible")
		return nil
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Warn().Err(err).Str("file", f).Msg("lecture du fichier de sous-titres impossible")
			continue
		}
		if segs, ok := subtitles.ParseFile(string(data), filepath.Ext(f)); ok && len(segs) > 0 {
			return segs
		}
	}
	return nil
}

// downloadTrack essaie les formats en ordre de préférence et retourne les
// premiers segments non vides. Toute erreur de téléchargement fait passer
// au format suivant.
func (s *Source) downloadTrack(ctx context.Context, tracks []model.SubtitleTrack, destDir string) []subtitles.Segment {
	for _, pref := range trackFormatPrefs {
		for _, tr := range tracks {
			if tr.Format != pref || tr.URL == "" {
				continue
			}
			dest := filepath.Join(destDir, "track."+tr.Lang+tr.Format.Extension())
			err := fetch.FetchToFileWithProgress(ctx, s.HTTPClient, tr.URL, dest,
				trackFetchTimeout, fetch.DefaultMaxBytes, 0o644, "sous-titres "+tr.Lang)
			if err != nil {
				log.Warn().Err(err).Str("lang", tr.Lang).Str("format", tr.Format.String()).
					Msg("échec téléchargement de la piste")
				continue
			}
			data, err := os.ReadFile(dest)
			if err != nil {
				log.Warn().Err(err).Str("file", dest).Msg("lecture de la piste impossible")
				continue
			}
			segs, err := subtitles.Parse(string(data), tr.Format)
			if err != nil {
				log.Warn().Err(err).Str("format", tr.Format.String()).Msg("piste illisible")
				continue
			}
			if len(segs) > 0 {
				return segs
			}
		}
	}
	return nil
}
