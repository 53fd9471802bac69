package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// yamlQuote retourne s entre guillemets, échappée pour le frontmatter YAML.
func yamlQuote(s string) string {
	return strconv.Quote(s)
}

// yamlListInline rend une liste YAML en ligne : ["a", "b"].
func yamlListInline(xs []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range xs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(s))
	}
	b.WriteByte(']')
	return b.String()
}

// yamlListBlock rend une liste YAML en bloc, une entrée quotée par ligne.
// La valeur suit "tags:" dans le frontmatter, d'où l'espace du cas vide.
func yamlListBlock(xs []string) string {
	if len(xs) == 0 {
		return " []"
	}
	items := make([]string, len(xs))
	for i, s := range xs {
		items[i] = "  - " + strconv.Quote(s)
	}
	return "\n" + strings.Join(items, "\n")
}

// joinHashtags normalise chaque entrée en #tag et les joint par des espaces.
func joinHashtags(xs []string) string {
	out := make([]string, 0, len(xs))
	for _, h := range xs {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		out = append(out, "#"+strings.TrimPrefix(h, "#"))
	}
	return strings.Join(out, " ")
}

// markdownList rend des lignes "- item" ; les entrées vides sont ignorées.
func markdownList(xs []string) string {
	var b strings.Builder
	for _, s := range xs {
		if s = strings.TrimSpace(s); s != "" {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return b.String()
}

// formatChapters rend une ligne Markdown par chapitre, cliquable quand
// baseURL est fournie (lien horodaté t=Ns, ? ou & selon l'URL).
func formatChapters(chs []model.Chapter, baseURL string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	var b strings.Builder
	for _, c := range chs {
		stamp := c.Start.TimestampHHMMSS()
		title := strings.TrimSpace(strings.ReplaceAll(c.Title, "\n", " "))
		if baseURL == "" {
			fmt.Fprintf(&b, "- %s - %s\n", stamp, title)
			continue
		}
		fmt.Fprintf(&b, "- [%s](%s%st=%ds) - %s\n", stamp, baseURL, sep, int64(c.Start), title)
	}
	return b.String()
}
