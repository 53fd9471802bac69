package report

import (
	"fmt"
	"strings"
)

// quoteBlock préfixe chaque ligne par "> " (blockquote Markdown), sans saut
// de ligne final. Les espaces de fin de ligne sont retirés.
func quoteBlock(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for i, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("> ")
		b.WriteString(strings.TrimRight(line, " \t"))
	}
	return b.String()
}

// titledQuote rend un blockquote, précédé d'une ligne de titre en gras quand
// deux arguments sont fournis :
//
//	{{ titledQuote .Description }}
//	{{ titledQuote "Un titre" .Description }}
func titledQuote(args ...any) string {
	var title, content string
	switch len(args) {
	case 0:
	case 1:
		content = fmt.Sprint(args[0])
	default:
		title = fmt.Sprint(args[0])
		content = fmt.Sprint(args[1])
	}

	var b strings.Builder
	if t := strings.TrimSpace(title); t != "" {
		b.WriteString("> **")
		b.WriteString(t)
		b.WriteString("**\n")
	}
	if content == "" {
		// bloc vide : une seule ligne >
		b.WriteString("> \n")
		return b.String()
	}
	b.WriteString(quoteBlock(content))
	b.WriteByte('\n')
	return b.String()
}
