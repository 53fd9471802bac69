package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrickprogramme/studyscribe/internal/config"
	"github.com/patrickprogramme/studyscribe/internal/ia"
	"github.com/patrickprogramme/studyscribe/internal/notes"
	"github.com/patrickprogramme/studyscribe/internal/report"
	"github.com/patrickprogramme/studyscribe/internal/subtitles"
	"github.com/patrickprogramme/studyscribe/pkg/model"
)

// fakeUI replays scripted inputs and records everything printed.
type fakeUI struct {
	inputs []string
	infos  []string
	errs   []string
	marks  []string
}

func (f *fakeUI) GetYtURL(ctx context.Context) (string, error) {
	return f.ReadLine(ctx, "")
}

func (f *fakeUI) ReadLine(ctx context.Context, prompt string) (string, error) {
	if len(f.inputs) == 0 {
		return "", io.EOF
	}
	in := f.inputs[0]
	f.inputs = f.inputs[1:]
	return in, nil
}

func (f *fakeUI) Confirm(ctx context.Context, prompt string) bool {
	in, err := f.ReadLine(ctx, prompt)
	if err != nil {
		return false
	}
	switch strings.ToLower(in) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}

func (f *fakeUI) PrintInfo(ctx context.Context, s string) { f.infos = append(f.infos, s) }

func (f *fakeUI) PrintError(ctx context.Context, s string) { f.errs = append(f.errs, s) }

func (f *fakeUI) PrintMarkdown(ctx context.Context, md string) { f.marks = append(f.marks, md) }

func (f *fakeUI) allInfos() string { return strings.Join(f.infos, "\n") }

func testMeta() *model.Meta {
	return &model.Meta{
		Ref:      model.VideoRef{ID: "dQw4w9WgXcQ", SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		Title:    "go concurrency patterns",
		Duration: 212,
		ManualSubs: []model.SubtitleTrack{
			{Lang: "en", Format: model.FormatJSON3, Source: model.SubSourceManual},
		},
		AutoSubs: []model.SubtitleTrack{
			{Lang: "fr", Format: model.FormatJSON3, Source: model.SubSourceAutomatic},
		},
	}
}

// testApp builds an App with session state already in place, as if the
// extraction step had just succeeded.
func testApp(t *testing.T, fake *fakeUI) *App {
	t.Helper()

	cfg := &config.Config{
		OutputDir:        t.TempDir(),
		TranscriptFormat: "txt",
		Languages:        []string{"en"},
	}
	meta := testMeta()
	segments := []subtitles.Segment{
		{Text: "Welcome to the talk.", Start: 0, Duration: 2},
		{Text: "Channels carry values between goroutines.", Start: 2, Duration: 3},
	}

	a := New(cfg, fake, &CLIFlags{}, nil, nil)
	a.meta = meta
	a.transcript = subtitles.NewTranscript(meta.Title, meta.Ref, "YouTube captions API", segments, nil)
	return a
}

func TestSessionQuit(t *testing.T) {
	fake := &fakeUI{inputs: []string{"q"}}
	a := testApp(t, fake)

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}
	if !strings.Contains(fake.allInfos(), "À bientôt.") {
		t.Errorf("expected farewell message, got infos: %q", fake.infos)
	}
}

func TestSessionEndsOnClosedStdin(t *testing.T) {
	fake := &fakeUI{} // no inputs, first ReadLine returns EOF
	a := testApp(t, fake)

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}
}

func TestSessionViews(t *testing.T) {
	fake := &fakeUI{inputs: []string{"1", "2", "3", "channels", "4", "q"}}
	a := testApp(t, fake)

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	all := fake.allInfos()
	wantParts := []string{
		"[00:00] Welcome to the talk.",
		"Welcome to the talk.\n\nChannels carry values",
		"1 segment(s) trouvé(s)",
		"[00:02] Channels carry values between goroutines.",
		"Sous-titres manuels      : en",
		"Sous-titres automatiques : fr",
	}
	for _, want := range wantParts {
		if !strings.Contains(all, want) {
			t.Errorf("session output missing %q", want)
		}
	}
}

func TestSessionSearchNoMatch(t *testing.T) {
	fake := &fakeUI{inputs: []string{"3", "quantum", "q"}}
	a := testApp(t, fake)

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}
	if !strings.Contains(fake.allInfos(), `Aucun segment ne contient "quantum"`) {
		t.Errorf("expected no-match message, got: %q", fake.infos)
	}
}

func TestSessionAIDisabledWithoutClient(t *testing.T) {
	fake := &fakeUI{inputs: []string{"5", "11", "q"}}
	a := testApp(t, fake) // nil ia client

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	count := 0
	for _, s := range fake.infos {
		if s == msgAIDisabled {
			count++
		}
	}
	if count != 2 {
		t.Errorf("AI-disabled message printed %d times; want 2", count)
	}
}

func TestSessionNotesFlow(t *testing.T) {
	// Enter the notes sub-menu, add a manual note, delete it, leave, quit.
	fake := &fakeUI{inputs: []string{"12", "a", "Key idea.", "d 1", "", "q"}}
	a := testApp(t, fake)

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	if a.notes.Len() != 0 {
		t.Errorf("notes.Len() = %d after add+delete; want 0", a.notes.Len())
	}
	all := fake.allInfos()
	if !strings.Contains(all, "[Note]") {
		t.Errorf("note listing missing manual note label, got: %q", all)
	}
	if !strings.Contains(all, "Note supprimée.") {
		t.Errorf("expected deletion confirmation, got: %q", all)
	}
}

func TestSessionSaveTranscript(t *testing.T) {
	fake := &fakeUI{inputs: []string{"13", "q"}}
	a := testApp(t, fake)

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	path := filepath.Join(a.cfg.OutputDir, "Go concurrency patterns.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected transcript file at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "[00:00] Welcome to the talk.") {
		t.Errorf("saved transcript missing timestamped line, got: %q", data)
	}
}

func TestSessionSaveReport(t *testing.T) {
	renderer, err := report.DefaultRenderer(filepath.Join(t.TempDir(), "studyscribe"))
	if err != nil {
		t.Fatalf("DefaultRenderer() error = %v", err)
	}

	fake := &fakeUI{inputs: []string{"15", "q"}}
	a := testApp(t, fake)
	a.renderer = renderer
	a.notes.Add(notes.KindSummary, "The talk is about channels.")
	a.notes.Add(notes.KindQuotes, "\"Don't communicate by sharing memory.\"")

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	// UploadDate is zero, so the filename suffix is the video id.
	path := filepath.Join(a.cfg.OutputDir, "Go concurrency patterns dQw4w9WgXcQ.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected report file at %s: %v", path, err)
	}

	content := string(data)
	wantParts := []string{
		"title: \"Go concurrency patterns\"",
		"extracted_by: YouTube captions API",
		"## Summary",
		"The talk is about channels.",
		"### Key Quotes",
		"## Transcript",
		"[00:00] Welcome to the talk.",
	}
	for _, want := range wantParts {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q", want)
		}
	}
	// The summary note feeds the Summary section, not a note section.
	if strings.Contains(content, "### Summary") {
		t.Error("summary note should not also appear as a note section")
	}
}

func TestSessionAIOpSavesNote(t *testing.T) {
	const reply = "## Summary\n\nChannels orchestrate; mutexes serialize."
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply)
	}))
	defer srv.Close()

	client, err := ia.NewClient("test-key", srv.URL, "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("ia.NewClient() error = %v", err)
	}

	// "5" runs the summary action, "o" accepts saving it as a note.
	fake := &fakeUI{inputs: []string{"5", "o", "q"}}
	a := testApp(t, fake)
	a.ai = client

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	if len(fake.marks) != 1 || fake.marks[0] != reply {
		t.Fatalf("rendered markdown = %q; want the model reply", fake.marks)
	}
	list := a.notes.List()
	if len(list) != 1 {
		t.Fatalf("notes.Len() = %d; want 1", len(list))
	}
	if list[0].Kind != notes.KindSummary {
		t.Errorf("note kind = %q; want %q", list[0].Kind, notes.KindSummary)
	}
	if list[0].Content != reply {
		t.Errorf("note content = %q; want the model reply", list[0].Content)
	}
}

func TestSessionChatKeepsHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":"It covers Go channels."}}]}`)
	}))
	defer srv.Close()

	client, err := ia.NewClient("test-key", srv.URL, "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("ia.NewClient() error = %v", err)
	}

	// One question, then an empty line to leave the chat.
	fake := &fakeUI{inputs: []string{"11", "What is this about?", "", "q"}}
	a := testApp(t, fake)
	a.ai = client

	if err := a.runSession(context.Background()); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	if len(a.history) != 1 {
		t.Fatalf("history length = %d; want 1", len(a.history))
	}
	if a.history[0].Question != "What is this about?" {
		t.Errorf("history question = %q", a.history[0].Question)
	}
	if a.history[0].Answer != "It covers Go channels." {
		t.Errorf("history answer = %q", a.history[0].Answer)
	}
}
