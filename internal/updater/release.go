package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickprogramme/studyscribe/pkg/github"
)

// YtDlpAsset est un binaire téléchargeable attaché à la release.
type YtDlpAsset struct {
	Name               string
	BrowserDownloadURL string
	ContentType        string
}

// YtDlpReleaseInfo porte les métadonnées de la release et les deux assets
// utiles : l'exécutable Linux et le .exe Windows.
type YtDlpReleaseInfo struct {
	TagName        string
	Name           string
	PublishedAt    time.Time
	Body           string
	HTMLURL        string
	WindowsRelease YtDlpAsset
	LinuxRelease   YtDlpAsset
}

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// getLatestRelease interroge l'API GitHub pour la dernière release de yt-dlp.
func getLatestRelease(ctx context.Context, gh github.Client) (*YtDlpReleaseInfo, error) {
	data, err := gh.FetchReleaseJSON(ctx, "yt-dlp", "yt-dlp")
	if err != nil {
		return nil, err
	}
	return parseRelease(data)
}

// parseRelease extrait les métadonnées et les deux assets attendus
// (binaire Linux et .exe Windows) du JSON de la release.
func parseRelease(data []byte) (*YtDlpReleaseInfo, error) {
	var raw rawRelease
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("décodage JSON: %w", err)
	}

	info := &YtDlpReleaseInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		Body:        raw.Body,
		HTMLURL:     raw.HTMLURL,
	}

	for _, a := range raw.Assets {
		switch a.Name {
		case "yt-dlp.exe":
			info.WindowsRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case "yt-dlp":
			info.LinuxRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.WindowsRelease.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("asset Windows introuvable")
	}
	if info.LinuxRelease.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("asset Linux introuvable")
	}

	return info, nil
}
