package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"video.en.vtt", "video.fr.srt", "notes.md", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	got, err := MatchingFiles(dir, []string{"*.vtt", "*.srt"})
	if err != nil {
		t.Fatalf("MatchingFiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 subtitle files, got %d (%v)", len(got), got)
	}
	// sorted by name regardless of which pattern matched first
	if !strings.HasSuffix(got[0], "video.en.vtt") || !strings.HasSuffix(got[1], "video.fr.srt") {
		t.Errorf("unexpected order: %v", got)
	}

	// missing directory is not an error, just no matches
	got, err = MatchingFiles(filepath.Join(dir, "nope"), []string{"*.vtt"})
	if err != nil {
		t.Fatalf("MatchingFiles on missing dir: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil matches for missing dir, got %v", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "sub", "out.txt")

	if err := WriteFileAtomic(dest, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}

	// overwrite replaces the previous content
	if err := WriteFileAtomic(dest, []byte("world"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, _ = os.ReadFile(dest)
	if string(data) != "world" {
		t.Errorf("content after overwrite = %q, want %q", data, "world")
	}

	// no stray temp files left behind
	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestBackupFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(src, []byte("version: 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	backup, original, err := BackupFile(src)
	if err != nil {
		t.Fatalf("BackupFile: %v", err)
	}
	if string(original) != "version: 1" {
		t.Errorf("original = %q, want %q", original, "version: 1")
	}
	if !strings.HasPrefix(filepath.Base(backup), "config.yaml.bak.") {
		t.Errorf("backup name = %s, want config.yaml.bak.<stamp>", filepath.Base(backup))
	}
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "version: 1" {
		t.Errorf("backup content = %q, want %q", data, "version: 1")
	}

	// missing source is an error
	if _, _, err := BackupFile(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestSaveDocumentAtomic(t *testing.T) {
	dir := t.TempDir()

	// first save uses the plain name
	p1, err := SaveDocumentAtomic(dir, "transcript", ".txt", []byte("one"), false)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if filepath.Base(p1) != "transcript.txt" {
		t.Errorf("first path = %s, want transcript.txt", filepath.Base(p1))
	}

	// second save without overwrite gets a numeric suffix
	p2, err := SaveDocumentAtomic(dir, "transcript", ".txt", []byte("two"), false)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if filepath.Base(p2) != "transcript_1.txt" {
		t.Errorf("second path = %s, want transcript_1.txt", filepath.Base(p2))
	}

	// overwrite reuses the base name and replaces content
	p3, err := SaveDocumentAtomic(dir, "transcript", ".txt", []byte("three"), true)
	if err != nil {
		t.Fatalf("overwrite save: %v", err)
	}
	if p3 != p1 {
		t.Errorf("overwrite path = %s, want %s", p3, p1)
	}
	data, _ := os.ReadFile(p3)
	if string(data) != "three" {
		t.Errorf("overwrite content = %q, want %q", data, "three")
	}

	// empty extension defaults to .txt
	p4, err := SaveDocumentAtomic(dir, "notes", "", []byte("n"), false)
	if err != nil {
		t.Fatalf("default ext save: %v", err)
	}
	if filepath.Base(p4) != "notes.txt" {
		t.Errorf("default ext path = %s, want notes.txt", filepath.Base(p4))
	}

	// empty base name is rejected
	if _, err := SaveDocumentAtomic(dir, "", ".md", []byte("x"), false); err == nil {
		t.Errorf("expected error for empty base name")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty falls back to untitled", "", "untitled"},
		{"colon becomes dash", "Go: the basics", "Go- the basics"},
		{"invalid runes become spaces", `a<b>c"d/e\f|g?h*i`, "A b c d e f g h i"},
		{"spaces collapse", "too   many    spaces", "Too many spaces"},
		{"trailing dots removed", "title...", "Title"},
		{"only invalid runes falls back", `///???`, "untitled"},
		{"first rune upper-cased", "étude de cas", "Étude de cas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	// long names are truncated
	long := strings.Repeat("a", 300)
	if got := SanitizeFilename(long); len(got) != 200 {
		t.Errorf("len = %d, want 200", len(got))
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"go", "Go"},
		{"Go", "Go"},
		{"été", "Été"},
		{"1st", "1st"},
	}
	for _, tt := range tests {
		if got := CapitalizeFirst(tt.in); got != tt.want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
