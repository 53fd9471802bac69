package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateYtDlpPresence contrôle statiquement le chemin configuré de yt-dlp :
// le répertoire parent doit être accessible et le chemin, s'il existe, doit
// être un fichier. Retourne warnings (non-fataux) et une erreur si critique.
func (c *Config) ValidateYtDlpPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	// assure que le resolved path est calculé
	c.ResolveYtDlpPath()

	p := strings.TrimSpace(c.YtDlp.ResolvedPath)
	if p == "" {
		// pas bloquant : la découverte dans PATH reste possible au démarrage
		return []string{"aucun chemin résolu pour yt-dlp; recherche dans PATH possible"}, nil
	}

	parent := filepath.Dir(p)
	switch st, serr := os.Stat(parent); {
	case os.IsNotExist(serr):
		warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin yt-dlp n'existe pas : %s", parent))
	case serr != nil:
		return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
	case !st.IsDir():
		return warnings, fmt.Errorf("le parent du chemin yt-dlp n'est pas un répertoire : %s", parent)
	}

	switch info, serr := os.Stat(p); {
	case os.IsNotExist(serr):
		warnings = append(warnings, fmt.Sprintf("yt-dlp introuvable à l'emplacement configuré : %s", p))
	case serr != nil:
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	case info.IsDir():
		return warnings, fmt.Errorf("le chemin configuré pour yt-dlp est un répertoire : %s", p)
	}

	return warnings, nil
}

// ValidateProxy contrôle la cohérence de la section proxy.
// Retourne warnings (non-fataux) et une erreur si la configuration est inutilisable.
func (c *Config) ValidateProxy() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	p := c.Proxy
	if strings.TrimSpace(p.Host) == "" && p.Port == 0 {
		// proxy non configuré : rien à valider
		return nil, nil
	}

	if strings.TrimSpace(p.Host) == "" {
		return warnings, fmt.Errorf("proxy : port %d défini mais hôte manquant", p.Port)
	}
	if p.Port <= 0 || p.Port > 65535 {
		return warnings, fmt.Errorf("proxy : port invalide %d (attendu 1-65535)", p.Port)
	}

	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case "", "http", "https", "socks5":
		// schémas pris en charge par le client HTTP
	default:
		warnings = append(warnings, fmt.Sprintf("proxy : type %q inconnu, http/https/socks5 attendus", p.Type))
	}

	if (p.Username == "") != (p.Password == "") {
		warnings = append(warnings, "proxy : identifiants incomplets, utilisateur et mot de passe sont requis ensemble")
	}

	return warnings, nil
}
