// Package github interroge l'API REST publique de GitHub, limité à ce dont
// l'application a besoin : la dernière release d'un dépôt.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIBase   = "https://api.github.com"
	defaultUserAgent = "studyscribe-updater"
	defaultTimeout   = 15 * time.Second
)

// Client accède à l'API GitHub. La valeur zéro utilise l'API publique avec
// un client HTTP par défaut.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// FetchReleaseJSON retourne le corps JSON brut de la dernière release du
// dépôt owner/repo.
func (c Client) FetchReleaseJSON(ctx context.Context, owner, repo string) ([]byte, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", base, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("création requête GitHub: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requête GitHub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("statut inattendu: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lecture du corps: %w", err)
	}
	return data, nil
}
