package subtitles

import (
	"strings"
	"testing"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

func testTranscript() Transcript {
	return Transcript{
		Title:  "Test Video",
		Ref:    model.VideoRef{ID: "dQw4w9WgXcQ", SourceURL: "https://youtu.be/dQw4w9WgXcQ"},
		Source: "YouTube captions API",
		Segments: []Segment{
			{Text: "Hello world", Start: 1.0, Duration: 2.0},
			{Text: "this is a test.", Start: 3.5, Duration: 2.0},
			{Text: "one", Start: 65.0, Duration: 1.0},
			{Text: "two", Start: 66.0, Duration: 1.0},
			{Text: "three", Start: 67.0, Duration: 1.0},
			{Text: "tail", Start: 68.0, Duration: 1.0},
		},
	}
}

func TestTimestamped(t *testing.T) {
	out := testTranscript().Timestamped()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "[00:01] Hello world" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	// minute rollover : 65s -> [01:05]
	if lines[2] != "[01:05] one" {
		t.Fatalf("unexpected minute formatting: %q", lines[2])
	}
}

func TestTimestampedEmpty(t *testing.T) {
	tr := Transcript{}
	if out := tr.Timestamped(); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestCollapsed(t *testing.T) {
	out := testTranscript().Collapsed()

	want := "Hello world this is a test. one two three tail"
	if out != want {
		t.Fatalf("Collapsed mismatch:\ngot  %q\nwant %q", out, want)
	}
}

func TestParagraphsBreaksOnSentenceEnd(t *testing.T) {
	tr := Transcript{Segments: []Segment{
		{Text: "Hello world", Start: 0},
		{Text: "this ends here.", Start: 2},
		{Text: "new paragraph", Start: 4},
	}}
	out := tr.Paragraphs()

	paras := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d:\n%s", len(paras), out)
	}
	if paras[0] != "Hello world this ends here." {
		t.Fatalf("unexpected first paragraph: %q", paras[0])
	}
	if paras[1] != "new paragraph" {
		t.Fatalf("unexpected second paragraph: %q", paras[1])
	}
}

func TestParagraphsBreaksAfterThreeSegments(t *testing.T) {
	tr := Transcript{Segments: []Segment{
		{Text: "one", Start: 0},
		{Text: "two", Start: 1},
		{Text: "three", Start: 2},
		{Text: "four", Start: 3},
	}}
	out := tr.Paragraphs()

	paras := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d:\n%s", len(paras), out)
	}
	if paras[0] != "one two three" || paras[1] != "four" {
		t.Fatalf("unexpected paragraphs: %+v", paras)
	}
}

func TestParagraphsToleratesClosingQuotes(t *testing.T) {
	// a closing quote after the period still ends the sentence
	tr := Transcript{Segments: []Segment{
		{Text: `he said "stop."`, Start: 0},
		{Text: "next", Start: 2},
	}}
	out := tr.Paragraphs()

	paras := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	if len(paras) != 2 {
		t.Fatalf("expected quote-terminated sentence to break paragraph, got:\n%s", out)
	}
}

func TestSearch(t *testing.T) {
	tr := testTranscript()

	got := tr.Search("HELLO")
	if len(got) != 1 || got[0].Start != 1.0 {
		t.Fatalf("case-insensitive search failed: %+v", got)
	}

	if got := tr.Search("absent"); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
	if got := tr.Search("  "); got != nil {
		t.Fatalf("expected nil for blank term, got %+v", got)
	}
}

func TestRenderMarkdownHasTitleHeader(t *testing.T) {
	out, err := testTranscript().Render(model.FormatMARKDOWN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "# Test Video\n\n") {
		t.Fatalf("expected title header, got:\n%s", out)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := testTranscript().Render(model.FormatJSON3); err == nil {
		t.Fatal("expected error for non textual format")
	}
}

func TestDisplayTitleFallbacks(t *testing.T) {
	tr := Transcript{Ref: model.VideoRef{ID: "abc123"}}
	if got := tr.DisplayTitle(); got != "abc123" {
		t.Fatalf("expected video id fallback, got %q", got)
	}
	if got := (Transcript{}).DisplayTitle(); got != "transcript" {
		t.Fatalf("expected generic fallback, got %q", got)
	}
}
