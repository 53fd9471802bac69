package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrickprogramme/studyscribe/internal/assets"
)

func TestEnsureTemplatesPresent(t *testing.T) {
	t.Run("CreatesMissingDir", func(t *testing.T) {
		tplDir := filepath.Join(t.TempDir(), "templates")

		if err := EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
			t.Fatalf("EnsureTemplatesPresent: %v", err)
		}
		for _, src := range assets.DefaultTemplatePaths {
			dest := filepath.Join(tplDir, filepath.Base(src))
			if _, err := os.Stat(dest); err != nil {
				t.Errorf("template %s not exported: %v", filepath.Base(src), err)
			}
		}
	})

	t.Run("NeverOverwritesExisting", func(t *testing.T) {
		tplDir := filepath.Join(t.TempDir(), "templates")
		if err := os.MkdirAll(tplDir, 0o755); err != nil {
			t.Fatal(err)
		}
		custom := filepath.Join(tplDir, "study_report.md.tmpl")
		if err := os.WriteFile(custom, []byte("customized"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
			t.Fatalf("EnsureTemplatesPresent: %v", err)
		}

		data, err := os.ReadFile(custom)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "customized" {
			t.Error("existing template was overwritten")
		}
		// Missing templates are still filled in.
		if _, err := os.Stat(filepath.Join(tplDir, "prompt_summary.txt.tmpl")); err != nil {
			t.Errorf("missing template not added: %v", err)
		}
	})
}

func TestEnsureConfigPresent(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "studyscribe.yaml")

	if err := EnsureConfigPresent(dst, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		t.Fatalf("EnsureConfigPresent: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read created config: %v", err)
	}
	if !strings.Contains(string(data), "config_version") {
		t.Error("created config does not look like the embedded example")
	}

	// Idempotent: a second call must not replace the file.
	if err := os.WriteFile(dst, []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureConfigPresent(dst, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		t.Fatalf("EnsureConfigPresent (second call): %v", err)
	}
	data, err = os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "edited" {
		t.Error("existing config was overwritten")
	}
}

func TestExportDefaults(t *testing.T) {
	destDir := t.TempDir()

	status, err := ExportDefaults(assets.Embedded, "templates", destDir, false)
	if err != nil {
		t.Fatalf("ExportDefaults: %v", err)
	}
	for path, st := range status {
		if st != "written" {
			t.Errorf("first export: %s = %q; want %q", path, st, "written")
		}
	}

	// Second run: nothing changed on disk.
	status, err = ExportDefaults(assets.Embedded, "templates", destDir, false)
	if err != nil {
		t.Fatalf("ExportDefaults (second run): %v", err)
	}
	for path, st := range status {
		if st != "unchanged" {
			t.Errorf("second export: %s = %q; want %q", path, st, "unchanged")
		}
	}

	// A locally modified file is preserved without force.
	modified := filepath.Join(destDir, "study_report.md.tmpl")
	if err := os.WriteFile(modified, []byte("local edit"), 0o644); err != nil {
		t.Fatal(err)
	}
	status, err = ExportDefaults(assets.Embedded, "templates", destDir, false)
	if err != nil {
		t.Fatalf("ExportDefaults (after edit): %v", err)
	}
	if st := status["templates/study_report.md.tmpl"]; st != "skipped (different)" {
		t.Errorf("status = %q; want %q", st, "skipped (different)")
	}

	// With force the file is replaced and a backup is kept.
	status, err = ExportDefaults(assets.Embedded, "templates", destDir, true)
	if err != nil {
		t.Fatalf("ExportDefaults (force): %v", err)
	}
	if st := status["templates/study_report.md.tmpl"]; st != "overwritten" {
		t.Errorf("status = %q; want %q", st, "overwritten")
	}
	backups, err := filepath.Glob(modified + ".bak.*")
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected one backup, got %v", backups)
	}
}
