package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// MatchingFiles liste les fichiers de path correspondant à l'un des motifs
// fournis dans patterns (syntaxe filepath.Match, ex: "*.vtt").
// - La recherche n'est pas récursive ; elle cherche uniquement dans path.
// - Le résultat est trié par nom pour un ordre de traitement stable.
// Renvoie (nil, nil) si le répertoire n'existe pas.
func MatchingFiles(path string, patterns []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("path exists but is not a directory")
	}

	var found []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(path, pat))
		if err != nil {
			// filepath.Glob n'échoue que sur un motif invalide
			return nil, err
		}
		found = append(found, matches...)
	}
	sort.Strings(found)
	return found, nil
}

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture
// dans un fichier temporaire du même répertoire puis os.Rename(tmp -> dest).
// Crée les répertoires parents si nécessaire.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // sans effet une fois le rename passé

	_, werr := tmp.Write(data)
	// Sync best-effort : un fsync raté ne doit pas faire échouer la sauvegarde
	_ = tmp.Sync()
	cerr := tmp.Close()
	if werr != nil {
		return fmt.Errorf("write temp file: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close temp file: %w", cerr)
	}

	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// BackupFile écrit une copie horodatée de path (suffixe .bak.<horodatage>)
// et retourne le chemin de la copie ainsi que le contenu original, pour
// permettre une restauration en mémoire si l'opération suivante échoue.
func BackupFile(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("lecture de %s pour sauvegarde: %w", path, err)
	}
	backup := path + ".bak." + time.Now().Format("20060102T150405")
	if err := WriteFileAtomic(backup, data, 0o644); err != nil {
		return "", nil, err
	}
	return backup, data, nil
}

// SaveDocumentAtomic écrit content dans outDir sous baseName+ext.
// - ext : extension avec le point ("" vaut ".txt") ; ex ".md", ".txt".
// - overwrite=false : si le fichier existe, suffixe _1, _2, ...
// - overwrite=true  : écrase directement.
// L'écriture passe par WriteFileAtomic. Retourne le chemin final.
func SaveDocumentAtomic(outDir, baseName, ext string, content []byte, overwrite bool) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("baseName empty")
	}
	if ext == "" {
		ext = ".txt"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", outDir, err)
	}

	final := filepath.Join(outDir, baseName+ext)
	if !overwrite {
		final = nextAvailablePath(outDir, baseName, ext)
	}
	if err := WriteFileAtomic(final, content, 0o644); err != nil {
		return "", err
	}
	return final, nil
}

// nextAvailablePath retourne baseName+ext s'il est libre, sinon la première
// variante _1.._N libre, sinon un nom horodaté en dernier recours.
func nextAvailablePath(outDir, baseName, ext string) string {
	p := filepath.Join(outDir, baseName+ext)
	if _, err := os.Stat(p); err != nil {
		return p
	}
	const maxAttempts = 1000
	for i := 1; i <= maxAttempts; i++ {
		candidate := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", baseName, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return filepath.Join(outDir, fmt.Sprintf("%s_%d%s", baseName, time.Now().Unix(), ext))
}
