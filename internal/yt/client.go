package yt

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// Interface est l'abstraction du binaire yt-dlp utilisée par la source
// secondaire. Elle facilite le test en autorisant une implémentation factice.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error)
	DownloadSubtitles(ctx context.Context, url, destDir string, langs []string) error
}

// InitYtDlp construit le client selon la configuration, vérifie la présence
// du binaire et sonde sa version (avec timeout). Retourne le client et la
// version.
func InitYtDlp(ctx context.Context, cfg *config.Config) (Interface, string, error) {
	ytCfg := NewYtDlpConfig(cfg.YtDlp.ShowWarnings, cfg.Proxy.URI())
	dl := NewYtDlp(cfg.YtDlp.Name, cfg.YtDlp.ResolvedPath, *ytCfg)
	log.Debug().Str("tool", "yt-dlp").Str("path", dl.Path).Msg("binaire configuré")

	if err := dl.CheckBinary(); err != nil {
		return nil, "", fmt.Errorf("yt-dlp introuvable : %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("échec récupération version yt-dlp : %w", err)
	}
	return dl, version, nil
}
