package subtitles

import (
	"strings"
	"testing"
)

const sampleJSON3 = `{
  "wireMagic": "pb3",
  "events": [
    {"tStartMs": 0, "dDurationMs": 2000, "segs": [{"utf8": "Hello"}, {"utf8": " world", "tOffsetMs": 500}]},
    {"tStartMs": 2000, "dDurationMs": 10, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 2500, "dDurationMs": 1500, "segs": [{"utf8": "second line"}]}
  ]
}`

func TestParseJSON3Bytes(t *testing.T) {
	raw, err := ParseJSON3Bytes([]byte(sampleJSON3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.WireMagic != "pb3" {
		t.Fatalf("expected wireMagic pb3, got %q", raw.WireMagic)
	}
	if len(raw.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(raw.Events))
	}
	if raw.Events[0].TStartMs == nil || *raw.Events[0].TStartMs != 0 {
		t.Fatalf("unexpected first event start: %+v", raw.Events[0])
	}
}

func TestParseJSON3BytesEmptyInput(t *testing.T) {
	if _, err := ParseJSON3Bytes(nil); err == nil {
		t.Fatal("expected error on empty input")
	}
	if _, err := ParseJSON3Bytes([]byte("{invalid")); err == nil {
		t.Fatal("expected error on invalid JSON")
	}
}

func TestParseJSON3Reader(t *testing.T) {
	raw, err := ParseJSON3Reader(strings.NewReader(sampleJSON3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(raw.Events))
	}
}

func TestSegmentsFromJSON3(t *testing.T) {
	raw, err := ParseJSON3Bytes([]byte(sampleJSON3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := SegmentsFromJSON3(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments (newline event dropped), got %d: %+v", len(got), got)
	}

	if got[0].Text != "Hello world" || got[0].Start != 0 || got[0].Duration != 2.0 {
		t.Fatalf("unexpected first segment: %+v", got[0])
	}
	if got[1].Text != "second line" || got[1].Start != 2.5 || got[1].Duration != 1.5 {
		t.Fatalf("unexpected second segment: %+v", got[1])
	}
}

func TestIsNewlineOnly(t *testing.T) {
	newline := "\n"
	cases := []struct {
		name string
		ev   rawEvent
		want bool
	}{
		{"no segs", rawEvent{}, false},
		{"single newline", rawEvent{Segs: []rawSeg{{Utf8: newline}}}, true},
		{"escaped newline", rawEvent{Segs: []rawSeg{{Utf8: `\n`}}}, true},
		{"real content", rawEvent{Segs: []rawSeg{{Utf8: "word"}}}, false},
		{"mixed", rawEvent{Segs: []rawSeg{{Utf8: newline}, {Utf8: "word"}}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.ev.IsNewlineOnly(); got != c.want {
				t.Fatalf("IsNewlineOnly = %v, want %v", got, c.want)
			}
		})
	}
}
