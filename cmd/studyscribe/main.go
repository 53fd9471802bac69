package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/app"
	"github.com/patrickprogramme/studyscribe/internal/assets"
	"github.com/patrickprogramme/studyscribe/internal/bootstrap"
	"github.com/patrickprogramme/studyscribe/internal/config"
	"github.com/patrickprogramme/studyscribe/internal/ia"
	"github.com/patrickprogramme/studyscribe/internal/report"
	"github.com/patrickprogramme/studyscribe/internal/ui"
)

const defaultConfigName = "studyscribe.yaml"

func main() {
	flags, exportTemplates := parseFlags()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flags.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// .env à côté du binaire ou dans le répertoire courant, pour GEMINI_API_KEY
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg("échec du chargement du fichier .env")
		}
	}

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Warn().Err(err).Msg("impossible de déterminer le chemin de l'exécutable")
	} else {
		binDir = filepath.Dir(exePath)
		log.Debug().Str("path", exePath).Msg("lancement")
	}

	tplDir := filepath.Join(binDir, "templates")
	if exportTemplates {
		exportDefaultTemplates(tplDir)
		return
	}

	// emplacement config par défaut
	if flags.ConfigPath == defaultConfigName || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, defaultConfigName)
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Warn().Err(err).Msg("installation de la configuration par défaut impossible")
	}

	// s'assurer que les templates existent (dans binDir/templates)
	if err := bootstrap.EnsureTemplatesPresent(
		tplDir,
		assets.Embedded,
		assets.DefaultTemplatePaths,
	); err != nil {
		log.Warn().Err(err).Msg("installation des templates par défaut impossible")
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("chargement de la configuration")
	}
	if warnings, err := cfg.ValidateProxy(); err != nil {
		log.Fatal().Err(err).Msg("configuration proxy invalide")
	} else {
		for _, w := range warnings {
			log.Warn().Msg(w)
		}
	}
	if warnings, err := cfg.ValidateYtDlpPresence(); err != nil {
		log.Fatal().Err(err).Msg("configuration yt-dlp invalide")
	} else {
		for _, w := range warnings {
			log.Debug().Msg(w)
		}
	}

	// construction du renderer (templates sur disque prioritaires)
	renderer, err := report.DefaultRenderer(exePath)
	if err != nil {
		log.Fatal().Err(err).Msg("impossible de construire le renderer")
	}
	log.Debug().Strs("templates", renderer.TemplateNames()).Msg("templates chargés")

	// client IA : sans clé d'API les actions IA restent désactivées
	aiClient, err := ia.NewClient(os.Getenv("GEMINI_API_KEY"), cfg.AI.BaseURL, cfg.AI.Model)
	if err != nil {
		if errors.Is(err, ia.ErrNoAPIKey) {
			log.Info().Msg("GEMINI_API_KEY absente, actions IA désactivées")
		} else {
			log.Warn().Err(err).Msg("client IA indisponible")
		}
		aiClient = nil
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags, aiClient, renderer)
	if err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Fatal().Err(err).Msg("app run")
	}
}

// exportDefaultTemplates copie les templates embarqués dans tplDir sans
// écraser les fichiers modifiés par l'utilisateur, puis affiche le statut
// de chaque fichier.
func exportDefaultTemplates(tplDir string) {
	status, err := bootstrap.ExportDefaults(assets.Embedded, "templates", tplDir, false)
	if err != nil {
		log.Fatal().Err(err).Msg("export des templates")
	}

	paths := make([]string, 0, len(status))
	for p := range status {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Printf("Templates exportés vers %s :\n", tplDir)
	for _, p := range paths {
		fmt.Printf("  %-40s %s\n", filepath.Base(p), status[p])
	}
}

func parseFlags() (*app.CLIFlags, bool) {
	f := &app.CLIFlags{}
	exportTemplates := false
	flag.StringVar(&f.ConfigPath, "config", defaultConfigName, "path to config file")
	flag.StringVar(&f.URL, "url", "", "YouTube URL (optional)")
	flag.StringVar(&f.YtDlpPath, "yt-dlp-path", "", "chemin absolu vers l'exécutable yt-dlp")
	flag.BoolVar(&f.Debug, "debug", false, "logs de debug")
	flag.BoolVar(&f.NoUpdateCheck, "no-update-check", false, "désactive la vérification de mise à jour de yt-dlp")
	flag.BoolVar(&exportTemplates, "export-templates", false, "exporte les templates par défaut à côté du binaire puis quitte")
	flag.Parse()
	return f, exportTemplates
}
