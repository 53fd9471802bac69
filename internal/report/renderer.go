package report

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/patrickprogramme/studyscribe/internal/assets"
)

// reportTemplate : basename du template du rapport d'étude.
const reportTemplate = "study_report.md.tmpl"

// Renderer parse ses templates à la première utilisation et mémorise le
// résultat (sync.Once), la construction reste donc sans I/O.
type Renderer struct {
	fsys     fs.FS    // source des templates (embed.FS ou os.DirFS)
	patterns []string // patterns relatifs au fsys, ex: "*.tmpl"

	once      sync.Once
	templates *template.Template
	err       error
}

// NewRendererFromFS construit un Renderer qui parsera patterns depuis fsys
// à la première demande de rendu.
func NewRendererFromFS(fsys fs.FS, patterns []string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("aucun template fourni")
	}
	return &Renderer{
		fsys:     fsys,
		patterns: append([]string(nil), patterns...),
	}, nil
}

// DefaultRenderer rend depuis binDir/templates quand le template du rapport y
// a été exporté (personnalisation utilisateur), sinon depuis les assets
// embarqués.
func DefaultRenderer(exePath string) (*Renderer, error) {
	tplDir := filepath.Join(filepath.Dir(exePath), "templates")
	if st, err := os.Stat(filepath.Join(tplDir, reportTemplate)); err == nil && !st.IsDir() {
		return newParsedRenderer(os.DirFS(tplDir))
	}

	// repli : template embarqué
	sub, err := fs.Sub(assets.Embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("sous-arborescence des templates embarqués : %w", err)
	}
	return newParsedRenderer(sub)
}

func newParsedRenderer(fsys fs.FS) (*Renderer, error) {
	r, err := NewRendererFromFS(fsys, []string{reportTemplate})
	if err != nil {
		return nil, err
	}
	if err := r.ParseNow(); err != nil {
		return nil, err
	}
	return r, nil
}

// ensure parse les templates au premier appel et rejoue la même erreur aux
// appels suivants.
func (r *Renderer) ensure() error {
	r.once.Do(func() {
		r.templates, r.err = parseAll(r.fsys, r.patterns)
	})
	return r.err
}

func parseAll(fsys fs.FS, patterns []string) (*template.Template, error) {
	t := template.New("root").Funcs(templateFuncs())
	for _, p := range patterns {
		parsed, err := t.ParseFS(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("parse pattern %q: %w", p, err)
		}
		t = parsed
	}
	return t, nil
}

// ParseNow force le parsing immédiat, pour remonter une erreur de template
// dès le démarrage plutôt qu'au premier rendu.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return fmt.Errorf("nil renderer")
	}
	return r.ensure()
}

// Render exécute le template nommé (basename du fichier .tmpl) avec data.
func (r *Renderer) Render(tmplName string, data ReportData) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is nil")
	}
	if err := r.ensure(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// RenderReport exécute le template du rapport d'étude avec data.
func (r *Renderer) RenderReport(data ReportData) ([]byte, error) {
	return r.Render(reportTemplate, data)
}

// TemplateNames liste les templates parsés ; avant parsing, les basenames
// des patterns servent d'indice.
func (r *Renderer) TemplateNames() []string {
	if r == nil {
		return nil
	}
	if r.templates == nil {
		out := make([]string, 0, len(r.patterns))
		for _, p := range r.patterns {
			out = append(out, filepath.Base(p))
		}
		return out
	}
	var names []string
	for _, t := range r.templates.Templates() {
		if n := t.Name(); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// templateFuncs expose les fonctions utilisables dans les templates, y
// compris les templates personnalisés exportés par l'utilisateur.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// frontmatter YAML
		"yamlQuote":      yamlQuote,
		"yamlList":       yamlListBlock,
		"yamlListInline": yamlListInline,

		// corps Markdown
		"markdownList":   markdownList,
		"joinHashtags":   joinHashtags,
		"quoteBlock":     quoteBlock,
		"titledQuote":    titledQuote,
		"formatChapters": formatChapters,
	}
}
