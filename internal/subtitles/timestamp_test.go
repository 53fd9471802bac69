package subtitles

import "testing"

func TestParseVTTTimestamp(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"simple", "00:00:01.500", 1.5},
		{"minutes", "00:01:30.250", 90.25},
		{"hours", "01:00:00.000", 3600.0},
		{"no fraction", "00:02:05", 125.0},
		{"two fields", "01:30.500", 90.5},
		{"short fraction is literal decimal", "00:00:05.5", 5.5},
		{"surrounding spaces", "  00:00:01.500  ", 1.5},
		{"empty", "", 0},
		{"garbage", "not a timestamp", 0},
		{"letters in fields", "aa:bb:cc.ddd", 0},
		{"srt comma refused", "00:00:01,500", 0},
		{"cue settings glued to fraction", "00:00:03.000 align:start", 0},
		{"negative component", "-1:30.000", 0},
		{"single field", "42.000", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := parseVTTTimestamp(c.in)
			if got != c.want {
				t.Fatalf("parseVTTTimestamp(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestParseSRTTimestamp(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"simple", "00:00:01,500", 1.5},
		{"minutes", "00:01:30,250", 90.25},
		{"hours", "01:00:00,000", 3600.0},
		{"no fraction", "00:02:05", 125.0},
		// two-field time-of-day is a VTT shape only
		{"two fields refused", "01:30,500", 0},
		{"vtt period refused", "00:00:01.500", 0},
		{"garbage", "xx", 0},
		{"empty", "", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := parseSRTTimestamp(c.in)
			if got != c.want {
				t.Fatalf("parseSRTTimestamp(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}
