package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[project]
name = "test-app"
version = "0.1.0"

[run]
entry = "main.bling"
depth-limit = 500
disassemble = true
`
	if err := os.WriteFile(filepath.Join(dir, "bling.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Project.Name != "test-app" {
		t.Errorf("project name = %q, want test-app", m.Project.Name)
	}
	if m.Project.Version != "0.1.0" {
		t.Errorf("project version = %q, want 0.1.0", m.Project.Version)
	}
	if m.Run.Entry != "main.bling" {
		t.Errorf("run entry = %q, want main.bling", m.Run.Entry)
	}
	if m.Run.DepthLimit != 500 {
		t.Errorf("depth limit = %d, want 500", m.Run.DepthLimit)
	}
	if !m.Run.Disassemble {
		t.Error("disassemble = false, want true")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[project]
name = "minimal"
`
	if err := os.WriteFile(filepath.Join(dir, "bling.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Run.DepthLimit != DefaultDepthLimit {
		t.Errorf("default depth limit = %d, want %d", m.Run.DepthLimit, DefaultDepthLimit)
	}
	if m.Run.Entry != "" {
		t.Errorf("default entry = %q, want empty", m.Run.Entry)
	}
	if m.EntryPath() != "" {
		t.Errorf("EntryPath = %q, want empty", m.EntryPath())
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	tomlContent := `[project]
name = "found-project"

[run]
entry = "scripts/main.bling"
`
	if err := os.WriteFile(filepath.Join(dir, "bling.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	// Should find the manifest from a deep subdirectory.
	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.Project.Name != "found-project" {
		t.Errorf("project name = %q, want found-project", m.Project.Name)
	}

	want := filepath.Join(m.Dir, "scripts", "main.bling")
	if m.EntryPath() != want {
		t.Errorf("EntryPath = %q, want %q", m.EntryPath(), want)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Errorf("FindAndLoad = %v, want nil", m)
	}
}
