// Package updater vérifie si le binaire yt-dlp installé correspond à la
// dernière release publiée sur GitHub.
package updater

import (
	"context"
	"fmt"

	"github.com/patrickprogramme/studyscribe/pkg/github"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string            // version récupérée localement
	LatestRelease  *YtDlpReleaseInfo // info complète de la release distante
	IsUpToDate     bool              // true si CurrentVersion == LatestRelease.TagName
}

// CheckYtDlpUpdate compare la version locale et la version GitHub.
func CheckYtDlpUpdate(ctx context.Context, localVer string) (*UpdateCheck, error) {
	return checkUpdate(ctx, localVer, github.Client{})
}

func checkUpdate(ctx context.Context, localVer string, gh github.Client) (*UpdateCheck, error) {
	latest, err := getLatestRelease(ctx, gh)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}
	return newUpdateCheck(localVer, latest), nil
}

func newUpdateCheck(localVer string, latest *YtDlpReleaseInfo) *UpdateCheck {
	return &UpdateCheck{
		CurrentVersion: localVer,
		LatestRelease:  latest,
		IsUpToDate:     localVer == latest.TagName,
	}
}

// GetUpdateLink retourne l'URL de téléchargement de l'asset correspondant
// au système d'exploitation donné (valeurs de runtime.GOOS).
func (u UpdateCheck) GetUpdateLink(system string) string {
	if system == "windows" {
		return u.LatestRelease.WindowsRelease.BrowserDownloadURL
	}
	return u.LatestRelease.LinuxRelease.BrowserDownloadURL
}
