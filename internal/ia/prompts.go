package ia

import (
	"bytes"
	"fmt"
	"path"
	"sync"
	"text/template"

	"github.com/patrickprogramme/studyscribe/internal/assets"
)

// promptData est le contexte d'exécution des templates de prompt.
type promptData struct {
	Transcript string
	Question   string
}

// Parsing paresseux des templates embarqués, une seule fois par processus.
var (
	promptOnce sync.Once
	promptTpl  *template.Template
	promptErr  error
)

func parsePrompts() error {
	promptOnce.Do(func() {
		promptTpl, promptErr = template.ParseFS(assets.Embedded, "templates/prompt_*.txt.tmpl")
		if promptErr != nil {
			promptErr = fmt.Errorf("parse des templates de prompt : %w", promptErr)
		}
	})
	return promptErr
}

// renderPrompt exécute le template désigné par sa clé dans assets.TemplateByName.
func renderPrompt(name string, data promptData) (string, error) {
	if err := parsePrompts(); err != nil {
		return "", err
	}
	tplPath, ok := assets.TemplateByName[name]
	if !ok {
		return "", fmt.Errorf("template de prompt inconnu : %s", name)
	}
	var buf bytes.Buffer
	if err := promptTpl.ExecuteTemplate(&buf, path.Base(tplPath), data); err != nil {
		return "", fmt.Errorf("exécution du template %s : %w", name, err)
	}
	return buf.String(), nil
}
