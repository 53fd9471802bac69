package subtitles

import (
	"testing"

	"github.com/patrickprogramme/studyscribe/pkg/model"
)

func TestParseDispatch(t *testing.T) {
	vttContent := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nvtt text\n"
	srtContent := "1\n00:00:01,000 --> 00:00:02,000\nsrt text\n"
	json3Content := `{"events":[{"tStartMs":1000,"dDurationMs":1000,"segs":[{"utf8":"json3 text"}]}]}`

	cases := []struct {
		name     string
		content  string
		format   model.Format
		wantText string
	}{
		{name: "vtt", content: vttContent, format: model.FormatVTT, wantText: "vtt text"},
		// srv payloads go through the VTT parser
		{name: "srv3", content: vttContent, format: model.FormatSRV3, wantText: "vtt text"},
		{name: "srt", content: srtContent, format: model.FormatSRT, wantText: "srt text"},
		{name: "json3", content: json3Content, format: model.FormatJSON3, wantText: "json3 text"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.content, c.format)
			if err != nil {
				t.Fatalf("Parse(%s) error = %v", c.format, err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 segment, got %d: %+v", len(got), got)
			}
			if got[0].Text != c.wantText {
				t.Fatalf("Text = %q; want %q", got[0].Text, c.wantText)
			}
		})
	}
}

// The same two cues expressed as VTT and as SRT must parse to identical
// segments.
func TestParseFormatsAgree(t *testing.T) {
	vtt := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:01.000\nhello world\n\n" +
		"00:00:01.000 --> 00:00:02.000\nthis is a test\n"
	srt := "1\n00:00:00,000 --> 00:00:01,000\nhello world\n\n" +
		"2\n00:00:01,000 --> 00:00:02,000\nthis is a test\n"

	fromVTT, err := Parse(vtt, model.FormatVTT)
	if err != nil {
		t.Fatalf("Parse(vtt) error = %v", err)
	}
	fromSRT, err := Parse(srt, model.FormatSRT)
	if err != nil {
		t.Fatalf("Parse(srt) error = %v", err)
	}

	want := []Segment{
		{Text: "hello world", Start: 0.0, Duration: 1.0},
		{Text: "this is a test", Start: 1.0, Duration: 1.0},
	}
	for name, got := range map[string][]Segment{"vtt": fromVTT, "srt": fromSRT} {
		if len(got) != len(want) {
			t.Fatalf("%s: got %d segments, want %d: %+v", name, len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s segment %d = %+v; want %+v", name, i, got[i], want[i])
			}
		}
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	if _, err := Parse("anything", model.FormatTXT); err == nil {
		t.Fatal("expected an error for a non-subtitle format")
	}
}

func TestParseFileByExtension(t *testing.T) {
	if _, ok := ParseFile("whatever", ".mp4"); ok {
		t.Fatal("expected ok=false for a non-subtitle extension")
	}

	segs, ok := ParseFile("1\n00:00:01,000 --> 00:00:02,000\nhello\n", ".srt")
	if !ok || len(segs) != 1 || segs[0].Text != "hello" {
		t.Fatalf("ParseFile(.srt) = %+v, %v", segs, ok)
	}

	segs, ok = ParseFile("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nworld\n", ".vtt")
	if !ok || len(segs) != 1 || segs[0].Text != "world" {
		t.Fatalf("ParseFile(.vtt) = %+v, %v", segs, ok)
	}
}
