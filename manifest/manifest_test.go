package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[time]
zone = "Europe/Berlin"
warnings = true

[log]
verbosity = 2
file = "tock.log"

[store]
path = "data/times.db"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Time.Zone != "Europe/Berlin" {
		t.Errorf("time zone = %q, want Europe/Berlin", m.Time.Zone)
	}
	if !m.Time.Warnings {
		t.Error("time warnings = false, want true")
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("log verbosity = %d, want 2", m.Log.Verbosity)
	}
	if got := m.LogFile(); got == nil || *got != filepath.Join(m.Dir, "tock.log") {
		t.Errorf("log file = %v, want %s", got, filepath.Join(m.Dir, "tock.log"))
	}
	if got := m.StorePath(); got != filepath.Join(m.Dir, "data", "times.db") {
		t.Errorf("store path = %q, want data/times.db under %s", got, m.Dir)
	}

	loc, err := m.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("location = %s, want Europe/Berlin", loc)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Store.Path != "tock.db" {
		t.Errorf("default store path = %q, want tock.db", m.Store.Path)
	}
	if m.LogFile() != nil {
		t.Errorf("default log file = %v, want nil", *m.LogFile())
	}
	if m.Time.Warnings {
		t.Error("warnings should default to false")
	}
}

func TestLoadManifestRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[time\nzone = 1", "parse error"},
		{"unknown key", "[time]\nzoen = \"UTC\"", "unknown key time.zoen"},
		{"bad zone", "[time]\nzone = \"Mars/Olympus\"", "invalid [time] zone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "[store]\npath = \"found.db\"\n")

	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.Store.Path != "found.db" {
		t.Errorf("store path = %q, want found.db", m.Store.Path)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when no tock.toml exists")
	}
}

func TestDefaultPathsWithoutDir(t *testing.T) {
	m := Default()
	if m.StorePath() != "tock.db" {
		t.Errorf("store path = %q, want tock.db", m.StorePath())
	}
	m.Store.Path = "/var/lib/tock.db"
	m.Dir = "/app"
	if m.StorePath() != "/var/lib/tock.db" {
		t.Errorf("absolute store path rewritten to %q", m.StorePath())
	}
}
