package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/patrickprogramme/studyscribe/internal/clipboard"
	"github.com/patrickprogramme/studyscribe/internal/yt"
)

type terminalUI struct {
	reader *bufio.Reader
}

func NewTerminal() Interface {
	return &terminalUI{reader: bufio.NewReader(os.Stdin)}
}

func (t *terminalUI) GetYtURL(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip, err := clipboard.Current(); err == nil {
		clip = strings.TrimSpace(clip)
		if yt.IsYouTubeURL(clip) {
			t.PrintInfo(ctx, fmt.Sprintf("Utilisation de l'URL depuis le presse-papier: %s", clip))
			return clip, nil
		}
	}
	// 2) prompt
	for {
		url, err := t.ReadLine(ctx, "Entrez l'URL d'une vidéo Youtube: ")
		if err != nil {
			return "", err
		}
		if yt.IsYouTubeURL(url) {
			return url, nil
		}
		fmt.Println("❌ URL invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) ReadLine(ctx context.Context, prompt string) (string, error) {
	fmt.Print(prompt)
	input, err := t.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("lecture stdin: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func (t *terminalUI) Confirm(ctx context.Context, prompt string) bool {
	input, err := t.ReadLine(ctx, prompt)
	if err != nil {
		return false
	}
	switch strings.ToLower(input) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Println(s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(os.Stderr, s)
}

// PrintMarkdown rend le markdown avec glamour. Le style vient de COLOR
// ("dark" par défaut) et NO_COLOR force le texte brut.
func (t *terminalUI) PrintMarkdown(ctx context.Context, md string) {
	if os.Getenv("NO_COLOR") != "" {
		fmt.Println(md)
		return
	}
	style := "dark"
	if c := os.Getenv("COLOR"); c != "" {
		style = c
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Println(out)
}
