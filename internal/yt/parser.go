package yt

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

type ytdlpChapter struct {
	StartTime float64 `json:"start_time"` // champ moderne, à préférer
	Start     float64 `json:"start"`      // fallback
	Title     string  `json:"title"`
}

type subtitleItem struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// ytdlpOutput représente la sortie JSON brute de `yt-dlp -j` pour une vidéo.
//
// Subtitles et AutomaticCaptions sont des maps où :
//   - la clé (string) correspond au code langue de la piste (ex. "fr", "en", "fr-orig").
//   - la valeur ([]subtitleItem) liste les pistes disponibles pour cette langue,
//     chaque élément portant l'extension du fichier (Ext) et l'URL de téléchargement.
type ytdlpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Uploader          string                    `json:"uploader"`
	UploadDate        string                    `json:"upload_date"`
	Timestamp         int64                     `json:"timestamp"` // en Unix epoch
	Duration          float64                   `json:"duration"`  // en secondes
	Description       string                    `json:"description"`
	Chapters          []ytdlpChapter            `json:"chapters"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ParseYTDLP transforme le JSON brut en struct Meta. Le catalogue de pistes
// est conservé en entier (toutes langues, tous formats) : la sélection se
// fait en aval selon les préférences de langue et de format.
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}

	meta := &model.Meta{
		Ref:         model.VideoRef{ID: y.ID},
		Title:       y.Title,
		Uploader:    y.Uploader,
		Duration:    model.Seconds(int64(math.Round(y.Duration))),
		Description: y.Description,
	}

	// upload_date: try YYYYMMDD puis timestamp (fallback)
	if y.UploadDate != "" {
		if t, err := time.Parse("20060102", y.UploadDate); err == nil {
			meta.UploadDate = t
		}
	}
	if meta.UploadDate.IsZero() && y.Timestamp != 0 {
		meta.UploadDate = time.Unix(y.Timestamp, 0).UTC()
	}

	// chapters
	for _, c := range y.Chapters {
		start := c.StartTime // StartTime est prioritaire: implémentation moderne
		if start == 0 {
			start = c.Start
		}
		meta.Chapters = append(meta.Chapters, model.Chapter{
			Start: model.Seconds(int64(math.Round(start))),
			Title: c.Title,
		})
	}

	meta.ManualSubs = collectTracks(y.Subtitles, model.SubSourceManual)
	meta.AutoSubs = collectTracks(y.AutomaticCaptions, model.SubSourceAutomatic)

	return meta, nil
}

// collectTracks aplatit une map langue -> pistes en slice de SubtitleTrack.
// Les langues sont parcourues en ordre trié pour un résultat déterministe ;
// l'ordre des formats d'une même langue est celui du JSON. Les extensions
// qui ne correspondent pas à un format de sous-titres connu sont écartées.
func collectTracks(byLang map[string][]subtitleItem, src model.SubSource) []model.SubtitleTrack {
	if len(byLang) == 0 {
		return nil
	}

	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var out []model.SubtitleTrack
	for _, lang := range langs {
		for _, it := range byLang[lang] {
			pf, err := model.ParseFormat(it.Ext)
			if err != nil || !pf.IsSubtitle() {
				continue
			}
			out = append(out, model.SubtitleTrack{
				Lang:   lang,
				Format: pf,
				URL:    it.URL,
				Source: src,
			})
		}
	}
	return out
}

// TracksForLang filtre les pistes d'une langue donnée en préservant l'ordre.
func TracksForLang(tracks []model.SubtitleTrack, lang string) []model.SubtitleTrack {
	var out []model.SubtitleTrack
	for _, t := range tracks {
		if t.Lang == lang {
			out = append(out, t)
		}
	}
	return out
}

// FirstLang retourne la première langue du catalogue (ordre des pistes),
// ou "" si le catalogue est vide.
func FirstLang(tracks []model.SubtitleTrack) string {
	if len(tracks) == 0 {
		return ""
	}
	return tracks[0].Lang
}
