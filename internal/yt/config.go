package yt

import (
	"path/filepath"
	"strings"
)

// subFormatPref : formats acceptés pour les fichiers écrits par yt-dlp,
// du préféré au toléré.
const subFormatPref = "vtt/srt/best"

// YtDlpConfig représente les flags ajoutables quand on utilise yt-dlp
type YtDlpConfig struct {
	SkipDownload bool
	NoWarnings   bool   // true => ajouter --no-warnings
	NoProgress   bool
	NoUpdate     bool
	NoConfig     bool   // true => ajouter --no-config pour ignorer les configs utilisateur
	Proxy        string // URI proxy passée telle quelle à yt-dlp (vide = pas de proxy)
}

// NewYtDlpConfig initalise une configuration standard de yt-dlp, showWarning vient du yaml de config
func NewYtDlpConfig(showWarning bool, proxy string) *YtDlpConfig {
	return &YtDlpConfig{
		SkipDownload: true,
		NoWarnings:   !showWarning,
		NoProgress:   true,
		NoUpdate:     true,
		NoConfig:     true, // valeur par défaut : ignorer les fichiers de config extérieurs (plus prévisible)
		Proxy:        proxy,
	}
}

// baseArgs construit le tronc commun des arguments yt-dlp.
func (c *YtDlpConfig) baseArgs() []string {
	args := make([]string, 0, 12)
	// mettre --no-config en tête pour éviter que des configs locales modifient le comportement
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	if c.SkipDownload {
		args = append(args, "--skip-download")
	}
	if c.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if c.NoProgress {
		args = append(args, "--no-progress")
	}
	if c.NoUpdate {
		args = append(args, "--no-update")
	}
	if c.Proxy != "" {
		args = append(args, "--proxy", c.Proxy)
	}
	return args
}

// BuildArgs construit les arguments pour l'extraction de métadonnées (-j).
func (c *YtDlpConfig) BuildArgs(url string) []string {
	args := c.baseArgs()
	args = append(args, "-j", url)
	return args
}

// BuildDownloadArgs construit les arguments pour le téléchargement des
// sous-titres (manuels et automatiques) dans destDir, pour les langues
// demandées, sans télécharger la vidéo.
func (c *YtDlpConfig) BuildDownloadArgs(url, destDir string, langs []string) []string {
	args := c.baseArgs()
	args = append(args,
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(langs, ","),
		"--sub-format", subFormatPref,
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		url,
	)
	return args
}
