package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Limite par défaut pour un binaire (yt-dlp fait ~35 Mo).
const DefaultMaxBinaryBytes = 200_000_000

// FetchToFileWithProgress télécharge rawURL en streaming vers destPath avec
// une barre de progression sur stderr : écriture dans un fichier temporaire
// du même répertoire puis os.Rename(tmp -> dest).
// - client nil -> client direct par défaut.
// - timeout : si <=0 on utilise 5 minutes (téléchargement long).
// - maxBytes : si <=0 on utilise DefaultMaxBinaryBytes.
// - perm : permissions du fichier final (ex: 0o755 pour un exécutable).
func FetchToFileWithProgress(ctx context.Context, client *http.Client, rawURL, destPath string, timeout time.Duration, maxBytes int64, perm os.FileMode, desc string) error {
	// defaults
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBinaryBytes
	}
	if client == nil {
		client = &http.Client{}
	}

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("fetch file: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("fetch file: new request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch file: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch file: unexpected http status %s: %w", resp.Status, ErrStatus)
	}
	if resp.ContentLength > 0 && resp.ContentLength > maxBytes {
		return fmt.Errorf("fetch file: content-length %d exceeds limit %d: %w", resp.ContentLength, maxBytes, ErrTooLarge)
	}

	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fetch file: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("fetch file: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// ContentLength -1 -> barre indéterminée (spinner)
	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	limited := io.LimitReader(resp.Body, maxBytes+1) // +1 pour détecter dépassement
	n, err := io.Copy(io.MultiWriter(tmp, bar), limited)
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("fetch file: copy body: %w", err)
	}
	if n > maxBytes {
		return fmt.Errorf("fetch file: body too large (>%d bytes): %w", maxBytes, ErrTooLarge)
	}

	// Sync best-effort avant le rename
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fetch file: close temp file: %w", err)
	}
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("fetch file: rename tmp -> dest: %w", err)
	}
	return nil
}
