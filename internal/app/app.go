// Package app câble les dépendances (UI, extraction, IA, rendu, FS) et
// déroule une session d'étude complète autour d'une vidéo.
package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/captions"
	"github.com/patrickprogramme/studyscribe/internal/config"
	"github.com/patrickprogramme/studyscribe/internal/extract"
	"github.com/patrickprogramme/studyscribe/internal/fetch"
	"github.com/patrickprogramme/studyscribe/internal/ia"
	"github.com/patrickprogramme/studyscribe/internal/notes"
	"github.com/patrickprogramme/studyscribe/internal/report"
	"github.com/patrickprogramme/studyscribe/internal/subtitles"
	"github.com/patrickprogramme/studyscribe/internal/ui"
	"github.com/patrickprogramme/studyscribe/internal/updater"
	"github.com/patrickprogramme/studyscribe/internal/yt"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

const (
	defaultUpdateTimeout  = 15 * time.Second
	defaultExtractTimeout = 2 * time.Minute
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath    string
	URL           string
	YtDlpPath     string
	Debug         bool
	NoUpdateCheck bool
}

// App orchestre les différentes dépendances (UI, extraction, IA, FS...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	ai       *ia.Client // nil : aucune clé d'API, actions IA désactivées
	renderer *report.Renderer

	// état de session, rempli par Run après extraction
	transcript subtitles.Transcript
	meta       *model.Meta
	status     string
	notes      *notes.Store
	history    []ia.Exchange
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, aiClient *ia.Client, renderer *report.Renderer) *App {
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		ai:       aiClient,
		renderer: renderer,
		notes:    notes.NewStore(),
	}
}

// Run exécute le flux principal : URL, extraction du transcript, puis la
// boucle de session interactive. L'échec d'extraction se termine par un
// statut affiché, pas par une erreur.
func (a *App) Run(ctx context.Context) error {
	// Récupération de l'URL : priorité flag > clipboard > prompt
	url := a.flags.URL
	if url == "" {
		// ui.GetYtURL effectue clipboard + prompt si nécessaire
		u, err := a.ui.GetYtURL(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		url = u
	}

	// si l'utilisateur a passé --yt-dlp-path, l'appliquer et re-résoudre
	if a.flags.YtDlpPath != "" {
		a.cfg.YtDlp.Path = a.flags.YtDlpPath
		a.cfg.ResolveYtDlpPath()
	}

	// Client HTTP partagé par les deux sources, via proxy si configuré.
	httpClient, err := fetch.NewClient(a.cfg.Proxy.URI())
	if err != nil {
		log.Warn().Err(err).Msg("proxy inutilisable, connexion directe")
		a.ui.PrintError(ctx, fmt.Sprintf("⚠️ Proxy ignoré : %v", err))
		httpClient, _ = fetch.NewClient("")
	}

	// Source secondaire : yt-dlp. Son absence n'est pas fatale, la source
	// primaire reste disponible.
	var secondary extract.Source
	dl, version, err := yt.InitYtDlp(ctx, a.cfg)
	if err != nil {
		log.Warn().Err(err).Msg("yt-dlp indisponible, source secondaire désactivée")
		a.ui.PrintError(ctx, fmt.Sprintf("⚠️ yt-dlp indisponible : %v", err))
	} else {
		secondary = yt.NewSource(dl, httpClient, a.cfg.Languages)
		// Update check (optionnel)
		if a.cfg.YtDlp.AutoUpdateCheck && !a.flags.NoUpdateCheck {
			a.YtDlpUpdateCheck(ctx, defaultUpdateTimeout, version)
		}
	}

	primary := captions.NewClient(httpClient, a.cfg.Languages)
	extractor := extract.New(primary, secondary, a.cfg.Proxy.Enabled())

	// Extraction du transcript
	exCtx, exCancel := context.WithTimeout(ctx, defaultExtractTimeout)
	defer exCancel()

	result := extractor.Extract(exCtx, url)
	a.ui.PrintInfo(ctx, result.Status)
	if !result.OK {
		return nil
	}

	a.meta = result.Meta
	a.status = result.Status
	a.transcript = subtitles.NewTranscript(
		a.meta.Title, a.meta.Ref, result.Source, result.Segments, a.meta.Chapters)

	a.ui.PrintInfo(ctx, a.meta.Pretty())

	return a.runSession(ctx)
}

// YtDlpUpdateCheck compare la version installée à la dernière release GitHub
// et affiche le lien de téléchargement si une mise à jour existe.
func (a App) YtDlpUpdateCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckYtDlpUpdate(uc, version)
	if err != nil {
		return fmt.Errorf("vérification de mise à jour a échoué : %v", err)
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ yt-dlp est à jour (%s)", check.CurrentVersion))
		return nil
	}

	a.ui.PrintInfo(ctx, "⚠️ Nouvelle version de Yt-dlp disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici:")
	a.ui.PrintInfo(ctx, check.GetUpdateLink(runtime.GOOS))

	return nil
}
