package subtitles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// json3.go : décodage du format json3 de YouTube (timedtext fmt=json3),
// consommé par la source primaire. La structure brute est mappée telle
// quelle puis réduite en segments normalisés.

// rawJSON3 représente la structure "brute" telle que renvoyée par YouTube.
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	AAppend     *int     `json:"aAppend,omitempty"`
	Segs        []rawSeg `json:"segs,omitempty"`
	// On ignore volontairement d'autres champs (wpWinPosId, wWinId, etc.)
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// IsNewlineOnly indique si l'event est uniquement un retour à la ligne.
// Il retourne true pour des segs qui ne contiennent que "\n", "\\n" ou des espaces.
func (e rawEvent) IsNewlineOnly() bool {
	if len(e.Segs) == 0 {
		return false
	}
	for _, s := range e.Segs {
		t := strings.TrimSpace(s.Utf8)
		if t == "" {
			continue
		}
		if t == "\n" || t == "\\n" {
			continue
		}
		// si un seg contient du contenu non-newline, il n'est pas "NewlineOnly"
		return false
	}
	return true
}

// ParseJSON3Bytes parse un blob JSON ([]byte) et retourne la structure rawJSON3.
// Adapté aux pistes déjà présentes 100% en mémoire.
func ParseJSON3Bytes(b []byte) (rawJSON3, error) {
	if len(b) == 0 {
		var raw rawJSON3
		return raw, fmt.Errorf("ParseJSON3Bytes: empty input")
	}
	return ParseJSON3Reader(bytes.NewReader(b))
}

// ParseJSON3Reader parse depuis un io.Reader (utile si on veut décoder depuis un flux).
// Pas de DisallowUnknownFields : le JSON contient souvent des champs non
// mappés (wpWinPosId, wWinId, etc.), on veut les ignorer proprement.
func ParseJSON3Reader(r io.Reader) (rawJSON3, error) {
	var raw rawJSON3
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return raw, fmt.Errorf("ParseJSON3Reader: decode error: %w", err)
	}
	return raw, nil
}

// SegmentsFromJSON3 réduit les events json3 en segments normalisés : un
// segment par event porteur de texte, timestamps convertis en secondes.
// Les events sans texte (retours à la ligne des fenêtres ASR) sont ignorés.
// Pour les pistes automatiques chaque event contient un seg par mot ; on les
// joint en respectant l'ordre, ce qui redonne la ligne de caption d'origine.
func SegmentsFromJSON3(raw rawJSON3) []Segment {
	segments := make([]Segment, 0, len(raw.Events))
	for _, ev := range raw.Events {
		if len(ev.Segs) == 0 || ev.IsNewlineOnly() {
			continue
		}

		var sb strings.Builder
		for _, seg := range ev.Segs {
			s := strings.ReplaceAll(seg.Utf8, "\\n", "\n")
			s = normalizeWhitespace(s)
			if s == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(s)
		}
		text := sb.String()
		if text == "" {
			continue
		}

		var start, dur float64
		if ev.TStartMs != nil {
			start = float64(*ev.TStartMs) / 1000
		}
		if ev.DDurationMs != nil {
			dur = float64(*ev.DDurationMs) / 1000
		}
		segments = append(segments, Segment{Text: text, Start: start, Duration: dur})
	}
	return segments
}
