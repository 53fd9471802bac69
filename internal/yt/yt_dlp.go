package yt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + args.
type YtDlp struct {
	Name   string
	Path   string // chemin vers l'exe
	Config YtDlpConfig
}

// NewYtDlp construit une instance. Path doit être le chemin résolu vers l'exe
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig) *YtDlp {
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

// ExtractedRaw contient le JSON brut de yt-dlp et les lignes d'avertissement
// qui l'accompagnaient sur la sortie.
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// LogWarnings trace les avertissements remontés par yt-dlp.
func (r *ExtractedRaw) LogWarnings() {
	for _, w := range r.Warnings {
		log.Warn().Str("tool", "yt-dlp").Msg(w)
	}
}

// CheckBinary vérifie que le binaire spécifié dans Cmd existe et est exécutable.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}

	exe := y.Path
	if exe == "" {
		log.Debug().Str("tool", "yt-dlp").Msg("CheckBinary: fallback sur le nom du binaire")
		exe = y.Name // fallback : essayer le nom si pas de path résolu
	}

	info, err := os.Stat(exe)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %v", exe, err)
	}

	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire, pas un fichier exécutable")
	}

	return nil
}

func (y *YtDlp) executable() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}

// GetVersion exécute `yt-dlp --version`. CombinedOutput pour avoir stderr
// dans le message d'erreur en cas d'échec.
func (y *YtDlp) GetVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, y.executable(), "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("échec exécution yt-dlp --version : %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

// ExtractRaw exécute `yt-dlp -j <url>` et renvoie la sortie JSON brute.
// La sortie est validée comme JSON avant d'être renvoyée.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	start := time.Now()
	defer func() {
		log.Debug().Str("tool", "yt-dlp").Dur("elapsed", time.Since(start)).Msg("métadonnées extraites")
	}()

	args := y.Config.BuildArgs(url)

	cmd := exec.CommandContext(ctx, y.executable(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump json failed: %w, output: %s", err, string(out))
	}

	var jsonLine string
	var warnings []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			jsonLine = line // si plusieurs lignes JSON, prendre la dernière/ la première selon besoin
		} else {
			warnings = append(warnings, line)
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie: %s", string(out))
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
	}, nil
}

// DownloadSubtitles exécute yt-dlp en mode sous-titres seuls et dépose les
// fichiers .vtt/.srt obtenus dans destDir. Les pistes manuelles et
// automatiques sont demandées pour chaque langue de langs.
func (y *YtDlp) DownloadSubtitles(ctx context.Context, url string, destDir string, langs []string) error {
	start := time.Now()
	defer func() {
		log.Debug().Str("tool", "yt-dlp").Dur("elapsed", time.Since(start)).Msg("sous-titres téléchargés")
	}()

	args := y.Config.BuildDownloadArgs(url, destDir, langs)

	cmd := exec.CommandContext(ctx, y.executable(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("yt-dlp subtitles download failed: %w, output: %s", err, string(out))
	}
	return nil
}
