package captions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/fetch"
	"github.com/patrickprogramme/studyscribe/internal/subtitles"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// ErrLangUnavailable signale que des pistes existent mais aucune dans les
// langues préférées. La source secondaire prend le relais dans ce cas.
var ErrLangUnavailable = errors.New("no caption track for preferred languages")

// Client est la source primaire de sous-titres : un aller-retour API sans
// binaire externe. Strict sur les langues : seules les préférences de
// configuration sont acceptées, le repli toutes-langues est laissé à la
// source secondaire.
type Client struct {
	HTTPClient *http.Client
	Langs      []string
	PlayerURL  string // vide -> endpoint officiel
}

func NewClient(httpClient *http.Client, langs []string) *Client {
	return &Client{
		HTTPClient: httpClient,
		Langs:      langs,
		PlayerURL:  defaultPlayerURL,
	}
}

func (c *Client) Name() string { return "YouTube captions API" }

// Fetch récupère la piste de sous-titres préférée :
//  1. appel player -> catalogue de pistes + fiche vidéo minimale
//  2. choix de piste : langues préférées en ordre, manuelles avant
//     automatiques pour chaque langue
//  3. téléchargement de la piste en json3 et conversion en segments
func (c *Client) Fetch(ctx context.Context, ref model.VideoRef) ([]subtitles.Segment, *model.Meta, error) {
	pr, err := fetchPlayerData(ctx, c.HTTPClient, c.playerURL(), ref.ID)
	if err != nil {
		return nil, nil, err
	}

	if s := pr.PlayabilityStatus.Status; s != "" && s != "OK" {
		reason := pr.PlayabilityStatus.Reason
		if reason == "" {
			reason = s
		}
		return nil, nil, fmt.Errorf("captions: vidéo non accessible : %s", reason)
	}

	meta := &model.Meta{
		Ref:         ref,
		Title:       pr.VideoDetails.Title,
		Uploader:    pr.VideoDetails.Author,
		Duration:    model.Seconds(pr.lengthSeconds()),
		ExtractedAt: time.Now(),
	}

	tracks := pr.usableTracks()
	fillTrackCatalog(meta, tracks)
	if len(tracks) == 0 {
		return nil, meta, subtitles.ErrNoSubtitle
	}

	track := pickTrack(tracks, c.Langs)
	if track == nil {
		log.Debug().Str("video", ref.ID).Int("tracks", len(tracks)).
			Msg("aucune piste dans les langues préférées")
		return nil, meta, ErrLangUnavailable
	}

	data, err := fetch.FetchBytesWithClient(ctx, c.HTTPClient, track.BaseURL+"&fmt=json3",
		fetch.DefaultTimeout, fetch.DefaultMaxBytes, nil)
	if err != nil {
		return nil, meta, fmt.Errorf("captions: téléchargement piste %s : %w", track.LanguageCode, err)
	}

	raw, err := subtitles.ParseJSON3Bytes(data)
	if err != nil {
		return nil, meta, fmt.Errorf("captions: piste %s : %w", track.LanguageCode, err)
	}
	return subtitles.SegmentsFromJSON3(raw), meta, nil
}

func (c *Client) playerURL() string {
	if c.PlayerURL != "" {
		return c.PlayerURL
	}
	return defaultPlayerURL
}

// fillTrackCatalog recopie le catalogue de pistes dans la fiche vidéo pour
// l'affichage des langues disponibles.
func fillTrackCatalog(m *model.Meta, tracks []captionTrack) {
	for _, t := range tracks {
		st := model.SubtitleTrack{Lang: t.LanguageCode, Format: model.FormatJSON3, Source: model.SubSourceManual}
		if t.IsAuto() {
			st.Source = model.SubSourceAutomatic
			m.AutoSubs = append(m.AutoSubs, st)
			continue
		}
		m.ManualSubs = append(m.ManualSubs, st)
	}
}

// pickTrack choisit la première piste correspondant aux langues préférées,
// les pistes manuelles d'une langue passant avant ses pistes automatiques.
func pickTrack(tracks []captionTrack, langs []string) *captionTrack {
	for _, lang := range langs {
		for i := range tracks {
			if tracks[i].LanguageCode == lang && !tracks[i].IsAuto() {
				return &tracks[i]
			}
		}
		for i := range tracks {
			if tracks[i].LanguageCode == lang && tracks[i].IsAuto() {
				return &tracks[i]
			}
		}
	}
	return nil
}
