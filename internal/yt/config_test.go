package yt

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	cfg := NewYtDlpConfig(false, "")
	got := cfg.BuildArgs("https://youtu.be/abc")

	want := []string{
		"--no-config",
		"--skip-download",
		"--no-warnings",
		"--no-progress",
		"--no-update",
		"-j", "https://youtu.be/abc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs = %v; want %v", got, want)
	}
}

func TestBuildArgs_ShowWarningsAndProxy(t *testing.T) {
	cfg := NewYtDlpConfig(true, "socks5://127.0.0.1:9050")
	got := cfg.BuildArgs("u")

	want := []string{
		"--no-config",
		"--skip-download",
		"--no-progress",
		"--no-update",
		"--proxy", "socks5://127.0.0.1:9050",
		"-j", "u",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs = %v; want %v", got, want)
	}
}

func TestBuildDownloadArgs(t *testing.T) {
	cfg := NewYtDlpConfig(false, "")
	got := cfg.BuildDownloadArgs("https://youtu.be/abc", "/tmp/subs", []string{"en", "en-US"})

	want := []string{
		"--no-config",
		"--skip-download",
		"--no-warnings",
		"--no-progress",
		"--no-update",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", "en,en-US",
		"--sub-format", "vtt/srt/best",
		"-o", filepath.Join("/tmp/subs", "%(title)s.%(ext)s"),
		"https://youtu.be/abc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildDownloadArgs = %v; want %v", got, want)
	}
}
