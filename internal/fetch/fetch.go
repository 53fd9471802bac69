// Package fetch fournit des utilitaires légers et testables pour télécharger
// des ressources HTTP, en direct ou à travers un proxy.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "StudyScribe/1.0"
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// NewClient construit un client HTTP qui route les requêtes à travers
// proxyURI (schémas http://, https:// ou socks5://).
// proxyURI vide -> client direct sans proxy.
func NewClient(proxyURI string) (*http.Client, error) {
	if proxyURI == "" {
		return &http.Client{}, nil
	}
	u, err := url.Parse(proxyURI)
	if err != nil {
		return nil, fmt.Errorf("fetch: invalid proxy uri %q: %w", proxyURI, err)
	}
	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(u)},
	}, nil
}

// FetchBytesWithClient télécharge l'URL et retourne les octets.
// - ctx peut être nil.
// - client nil -> client direct par défaut.
// - timeout : si <=0 on utilise DefaultTimeout.
// - maxBytes : si <=0 on utilise DefaultMaxBytes.
// - header nil -> seul le User-Agent par défaut est posé ; sinon les en-têtes
//   fournis sont copiés tels quels (l'appelant peut donc imposer son UA).
// Note : cette fonction lit tout en mémoire (OK pour JSON youtube).
func FetchBytesWithClient(ctx context.Context, client *http.Client, rawURL string, timeout time.Duration, maxBytes int64, header http.Header) ([]byte, error) {
	// defaults
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if client == nil {
		client = &http.Client{}
	}

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	// timeout via context
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	if header == nil {
		req.Header.Set("User-Agent", DefaultUserAgent)
	} else {
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", DefaultUserAgent)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: unexpected http status %s: %w", resp.Status, ErrStatus)
	}

	// si Content-Length connu et supérieur à maxBytes -> échouer vite
	if resp.ContentLength > 0 && resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, maxBytes, ErrTooLarge)
	}

	r := io.LimitReader(resp.Body, maxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch: body too large (>%d bytes): %w", maxBytes, ErrTooLarge)
	}
	return data, nil
}
