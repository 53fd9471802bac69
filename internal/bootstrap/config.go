package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/patrickprogramme/studyscribe/internal/fsutil"
)

// EnsureConfigPresent copie l'exemple embarqué (assetPath dans fsys) vers
// dstPath si ce dernier n'existe pas encore. Idempotent : ne remplace jamais
// un fichier existant. Les répertoires parents sont créés au besoin par
// l'écriture atomique.
func EnsureConfigPresent(dstPath string, fsys fs.FS, assetPath string) error {
	switch _, err := os.Stat(dstPath); {
	case err == nil:
		return nil // déjà en place, on ne touche à rien
	case !os.IsNotExist(err):
		return fmt.Errorf("test du fichier de configuration %s : %w", dstPath, err)
	}

	data, err := fs.ReadFile(fsys, filepath.ToSlash(assetPath))
	if err != nil {
		return fmt.Errorf("exemple de configuration embarqué %s introuvable : %w", assetPath, err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("installation de la configuration %s : %w", dstPath, err)
	}

	log.Info().Str("path", dstPath).Msg("configuration par défaut installée")
	return nil
}
