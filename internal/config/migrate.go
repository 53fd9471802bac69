package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/studyscribe/internal/fsutil"
)

// migrations[v] amène une configuration de la version v à la version v+1.
var migrations = map[int]func(*Config){
	// 0 -> 1 : les préférences de langues deviennent obligatoires
	0: func(cfg *Config) {
		if len(cfg.Languages) == 0 {
			cfg.Languages = append([]string(nil), defaultLanguages...)
		}
	},
}

// orchestrateConfigUpgrade : sauvegarde horodatée du fichier courant,
// application des migrations successives, réécriture atomique. En cas d'échec
// d'écriture le contenu original est restauré.
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg == nil {
		return fmt.Errorf("config nil lors de la migration")
	}
	if cfg.configFilePath == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	backupPath, original, err := fsutil.BackupFile(cfg.configFilePath)
	if err != nil {
		return fmt.Errorf("échec de la sauvegarde du fichier de configuration avant migration : %w", err)
	}

	for v := fromVersion; v < CurrentConfigVersion; v++ {
		if step, ok := migrations[v]; ok {
			step(cfg)
		}
	}

	// une migration peut introduire des valeurs à nettoyer
	cfg.normalizeConfig()
	cfg.ConfigVersion = CurrentConfigVersion

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("échec d'encodage YAML de la configuration migrée : %w", err)
	}
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		_ = fsutil.WriteFileAtomic(cfg.configFilePath, original, 0o644)
		return fmt.Errorf("échec d'écriture du fichier de configuration migré %s : %w", cfg.configFilePath, err)
	}

	log.Info().Int("from", fromVersion).Int("to", CurrentConfigVersion).
		Str("backup", backupPath).Msg("configuration mise à jour")
	return nil
}
