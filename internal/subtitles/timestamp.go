package subtitles

import (
	"strconv"
	"strings"
)

// timestamp.go : conversion des horodatages VTT/SRT en secondes.
// Toute valeur illisible vaut 0.0, jamais d'erreur : c'est la ligne de cue
// qui décide de sauter un bloc, pas l'horloge.

// parseVTTTimestamp convertit "HH:MM:SS.mmm" en secondes. La forme courte
// "MM:SS.mmm" est acceptée. La partie fractionnaire est lue comme décimale
// littérale : ".5" vaut une demi-seconde, pas 5 millisecondes.
func parseVTTTimestamp(ts string) float64 {
	return parseClock(ts, '.', false)
}

// parseSRTTimestamp convertit "HH:MM:SS,mmm" en secondes.
// Contrairement au VTT, la forme à deux champs "MM:SS" est refusée.
func parseSRTTimestamp(ts string) float64 {
	return parseClock(ts, ',', true)
}

// parseClock fait le travail commun : séparation de la fraction sur la
// dernière occurrence de sep, puis lecture des champs H:M:S entiers.
func parseClock(ts string, sep byte, requireHours bool) float64 {
	ts = strings.TrimSpace(ts)

	clock := ts
	frac := 0.0
	if i := strings.LastIndexByte(ts, sep); i >= 0 {
		f, err := strconv.ParseFloat("0."+strings.TrimSpace(ts[i+1:]), 64)
		if err != nil {
			return 0
		}
		clock = ts[:i]
		frac = f
	}

	fields := strings.Split(clock, ":")
	if len(fields) != 3 && (requireHours || len(fields) != 2) {
		return 0
	}

	// total*60+n déroule H:M:S (ou M:S) en secondes
	total := 0
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return float64(total) + frac
}
