package subtitles

import (
	"slices"
	"sort"
	"strings"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// event représente un élément temporel dans la timeline du rendu paragraphe.
// Il peut s'agir soit d'un paragraphe, soit d'un chapitre, identifiés par
// isChapter. Les événements sont fusionnés puis triés par timestamp (ts).
// Le champ order sert de critère de tri stable en cas d'égalité de timestamps.
type event struct {
	ts        int64  // Timestamp en millisecondes
	isChapter bool   // Indique s'il s'agit d'un chapitre (true) ou d'un paragraphe (false)
	text      string // Contenu textuel (titre du chapitre ou paragraphe)
	order     int    // Critère de tri stable en cas d'égalité de ts
}

// absInt64 retourne la valeur absolue d'un entier 64 bits.
func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// ensureSortedParagraphs trie seulement si la slice n'est pas déjà triée
// vérif O(n) + tri O(n log n).
func ensureSortedParagraphs(paras []paragraph) {
	if len(paras) <= 1 {
		return
	}
	if sort.SliceIsSorted(paras, func(i, j int) bool { return paras[i].startMs < paras[j].startMs }) {
		return
	}
	sort.Slice(paras, func(i, j int) bool { return paras[i].startMs < paras[j].startMs })
}

// sortChapters trie seulement si la slice n'est pas déjà triée
func sortChapters(chaps []model.Chapter) {
	if len(chaps) <= 1 {
		return
	}
	sort.Slice(chaps, func(i, j int) bool {
		return chaps[i].Start.Milliseconds() < chaps[j].Start.Milliseconds()
	})
}

// splitChapters : sépare en before / middle / after (respecte l'ordre d'entrée)
func splitChapters(chaps []model.Chapter, firstParaTs, lastParaTs int64) (before, middle, after []model.Chapter) {
	for _, c := range chaps {
		ts := c.Start.Milliseconds()
		switch {
		case ts <= firstParaTs:
			before = append(before, c)
		case ts > lastParaTs:
			after = append(after, c)
		default:
			middle = append(middle, c)
		}
	}
	return
}

// nearestParagraphIndex : recherche binaire pour trouver l'index du paragraphe
// le plus proche. Retourne index (0..len(paras)-1) et la distance abs en ms.
func nearestParagraphIndex(paras []paragraph, chTs int64) (int, int64) {
	// maxInt64 : valeur arbitrairement grande utilisée comme distance maximale initiale.
	const maxInt64 = int64(1<<62 - 1)

	// cas trivial
	n := len(paras)
	if n == 0 {
		return -1, maxInt64
	}

	// Utilise slices.BinarySearchFunc (Go 1.21+). idx est le point d'insertion si found == false.
	idx, found := slices.BinarySearchFunc(paras, chTs, func(p paragraph, key int64) int {
		if p.startMs < key {
			return -1
		}
		if p.startMs > key {
			return 1
		}
		return 0
	})

	if found {
		return idx, 0
	}

	nearest := -1
	minDist := maxInt64

	// voisin de droite = idx (s'il existe)
	if idx < n {
		d := absInt64(paras[idx].startMs - chTs)
		if d < minDist {
			minDist = d
			nearest = idx
		}
	}
	// voisin de gauche = idx-1 (s'il existe)
	if idx-1 >= 0 {
		d := absInt64(chTs - paras[idx-1].startMs)
		if d < minDist {
			minDist = d
			nearest = idx - 1
		}
	}
	return nearest, minDist
}

// adjustMiddleChapters : pour chaque chapitre dans middle, trouve le paragraphe
// le plus proche et éventuellement "nudge" si dist <= thresholdMs
// (threshold==0 => toujours nudge). Retourne des events prêts à fusionner.
func adjustMiddleChapters(middle []model.Chapter, paras []paragraph, thresholdMs int64, baseOrder int) []event {
	events := make([]event, 0, len(middle))
	for i, ch := range middle {
		chMs := ch.Start.Milliseconds()
		idx, dist := nearestParagraphIndex(paras, chMs)
		adjusted := chMs
		if idx >= 0 && (thresholdMs == 0 || dist <= thresholdMs) {
			// nudge juste avant le paragraphe le plus proche
			target := paras[idx].startMs
			if target > 0 {
				adjusted = target - 1
			} else {
				adjusted = 0
			}
		}
		events = append(events, event{
			ts:        adjusted,
			isChapter: true,
			text:      ch.Title,
			order:     baseOrder + i,
		})
	}
	return events
}

// buildEventsFromParagraphs : transforme les paragraphes en events (isChapter=false)
func buildEventsFromParagraphs(paras []paragraph, baseOrder int) []event {
	ev := make([]event, 0, len(paras))
	for i, p := range paras {
		ev = append(ev, event{
			ts:        p.startMs,
			isChapter: false,
			text:      p.text,
			order:     baseOrder + i,
		})
	}
	return ev
}

// mergeAndRender : tri stable des events puis rendu final : blocs séparés
// par une ligne vide, chapitres rendus en titres "## ...".
func mergeAndRender(ev []event) string {
	sort.SliceStable(ev, func(i, j int) bool {
		if ev[i].ts != ev[j].ts {
			return ev[i].ts < ev[j].ts
		}
		if ev[i].isChapter != ev[j].isChapter {
			return ev[i].isChapter
		}
		return ev[i].order < ev[j].order
	})

	blocks := make([]string, 0, len(ev))
	for _, e := range ev {
		if e.isChapter {
			// normaliser le titre : enlever # et espaces initiaux
			title := strings.TrimSpace(strings.TrimLeft(e.text, "# "))
			if title == "" {
				continue
			}
			blocks = append(blocks, "## "+title)
			continue
		}
		text := strings.TrimSpace(e.text)
		if text == "" {
			continue
		}
		blocks = append(blocks, text)
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// paragraphsWithChapters : vue paragraphe avec titres de chapitres insérés.
// thresholdMs : seuil de distance en millisecondes.
// thresholdMs == 0 => on colle toujours un chapitre sur le paragraphe le plus proche.
func (t Transcript) paragraphsWithChapters(thresholdMs int64) string {
	paras := t.buildParagraphs()
	chaps := make([]model.Chapter, len(t.Chapters))
	copy(chaps, t.Chapters)

	ensureSortedParagraphs(paras)
	sortChapters(chaps)

	if len(paras) == 0 {
		// rien que des chapitres : rendu direct
		events := make([]event, 0, len(chaps))
		for i, c := range chaps {
			events = append(events, event{
				ts:        c.Start.Milliseconds(),
				isChapter: true,
				text:      c.Title,
				order:     i,
			})
		}
		return mergeAndRender(events)
	}

	firstTs := paras[0].startMs
	lastTs := paras[len(paras)-1].startMs

	before, middle, after := splitChapters(chaps, firstTs, lastTs)

	// On construit les events :
	events := make([]event, 0, len(paras)+len(chaps))
	// chaps_before : insérés tels quels (convertis en events)
	for i, c := range before {
		events = append(events, event{
			ts:        c.Start.Milliseconds(),
			isChapter: true,
			text:      c.Title,
			order:     i, // garde l'ordre relatif
		})
	}
	// paragraphes -> events avec un ordre de base situé après les events "before"
	baseOrderParas := len(before)
	events = append(events, buildEventsFromParagraphs(paras, baseOrderParas)...)

	// ajuste les chapitres "middle" (leur baseOrder vient après les paragraphes)
	baseOrderMiddle := baseOrderParas + len(paras)
	events = append(events, adjustMiddleChapters(middle, paras, thresholdMs, baseOrderMiddle)...)

	// chaps_after : conservés tels quels, ordonnés après tous les autres events
	baseOrderAfter := baseOrderMiddle + len(middle)
	for i, c := range after {
		events = append(events, event{
			ts:        c.Start.Milliseconds(),
			isChapter: true,
			text:      c.Title,
			order:     baseOrderAfter + i,
		})
	}

	// merge, sort and render
	return mergeAndRender(events)
}
