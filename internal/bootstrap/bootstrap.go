// Package bootstrap installe les ressources embarquées (configuration,
// templates de prompt et de rapport) à côté du binaire au premier lancement.
package bootstrap

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/studyscribe/internal/fsutil"
)

// ExportDefaults copie tous les fichiers sous srcPrefix (dans fsys) vers
// destDir en préservant la hiérarchie relative. Avec force=false un fichier
// local modifié est conservé ; avec force=true il est remplacé après copie
// de sauvegarde. Retourne une map[cheminEmbarqué]statut.
func ExportDefaults(fsys fs.FS, srcPrefix, destDir string, force bool) (map[string]string, error) {
	status := make(map[string]string)

	err := fs.WalkDir(fsys, srcPrefix, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcPrefix, path)
		if err != nil {
			return err
		}
		st, err := exportOne(fsys, filepath.ToSlash(path), filepath.Join(destDir, rel), force)
		status[path] = st
		return err
	})

	return status, err
}

// exportOne exporte un seul fichier embarqué et retourne son statut :
// "written", "unchanged", "skipped (different)", "overwritten" ou "error: ...".
func exportOne(fsys fs.FS, src, dest string, force bool) (string, error) {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return "error: " + err.Error(), fmt.Errorf("lecture du fichier embarqué %s : %w", src, err)
	}

	existing, readErr := os.ReadFile(dest)
	replacing := readErr == nil
	switch {
	case replacing && bytes.Equal(existing, data):
		return "unchanged", nil
	case replacing && !force:
		return "skipped (different)", nil
	case replacing:
		if _, _, err := fsutil.BackupFile(dest); err != nil {
			return "error: " + err.Error(), fmt.Errorf("sauvegarde de %s impossible : %w", dest, err)
		}
	case !os.IsNotExist(readErr):
		return "error: " + readErr.Error(), readErr
	}

	if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return "error: " + err.Error(), err
	}
	if replacing {
		return "overwritten", nil
	}
	return "written", nil
}

// EnsureTemplatesPresent s'assure que chaque template listé existe sur
// disque, en copiant depuis fsys ceux qui manquent (basename sous tplDir).
// Ne remplace JAMAIS un fichier existant. Crée tplDir au besoin.
//
// Les chemins de srcFiles doivent être utilisables avec fs.ReadFile(fsys, p).
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) error {
	// le parent doit exister : garde-fou contre un binDir mal résolu
	parent := filepath.Dir(tplDir)
	if parent == "" {
		parent = "."
	}
	if st, err := os.Stat(parent); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("le répertoire parent n'existe pas : %s", parent)
		}
		return fmt.Errorf("échec lors du test du répertoire parent %s : %w", parent, err)
	} else if !st.IsDir() {
		return fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}

	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return fmt.Errorf("échec de création du répertoire de templates %s : %w", tplDir, err)
	}

	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, filepath.Base(src))
		if _, err := os.Stat(dest); err == nil {
			continue // déjà présent, on n'y touche pas
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("échec lors du test du fichier %s : %w", dest, err)
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(src))
		if err != nil {
			return fmt.Errorf("fichier embarqué introuvable %s : %w", src, err)
		}
		if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
			return fmt.Errorf("échec d'écriture du template %s : %w", dest, err)
		}
	}
	return nil
}
