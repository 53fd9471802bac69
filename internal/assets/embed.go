package assets

import "embed"

//go:embed studyscribe.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "studyscribe.example.yaml"

// DefaultTemplatePaths : liste ordonnée des templates "par défaut" embarqués.
// Ce sont des chemins relatifs DANS Embedded (ex: "templates/study_report.md.tmpl").
var DefaultTemplatePaths = []string{
	"templates/prompt_summary.txt.tmpl",
	"templates/prompt_quotes.txt.tmpl",
	"templates/prompt_study_guide.txt.tmpl",
	"templates/prompt_qa.txt.tmpl",
	"templates/prompt_flashcards.txt.tmpl",
	"templates/prompt_insights.txt.tmpl",
	"templates/prompt_chat.txt.tmpl",
	"templates/study_report.md.tmpl",
}

// TemplateByName donne un accès par clé (map).
var TemplateByName = map[string]string{
	"summary":      "templates/prompt_summary.txt.tmpl",
	"quotes":       "templates/prompt_quotes.txt.tmpl",
	"study_guide":  "templates/prompt_study_guide.txt.tmpl",
	"qa":           "templates/prompt_qa.txt.tmpl",
	"flashcards":   "templates/prompt_flashcards.txt.tmpl",
	"insights":     "templates/prompt_insights.txt.tmpl",
	"chat":         "templates/prompt_chat.txt.tmpl",
	"study_report": "templates/study_report.md.tmpl",
}
