package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Point at a file that does not exist; defaults must still apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Categories) != 5 || cfg.Categories[0] != "Job Hunting" {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.WorkHours.Start != 6 || cfg.WorkHours.End != 22 {
		t.Errorf("WorkHours = %+v, want 6-22", cfg.WorkHours)
	}
	if cfg.Diversity.Days != 2 || cfg.Diversity.Threshold != 0.70 {
		t.Errorf("Diversity = %+v, want 2 days threshold 0.70", cfg.Diversity)
	}
	if !cfg.Output.Color || cfg.Output.Width != 80 {
		t.Errorf("Output = %+v, want color on width 80", cfg.Output)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `categories:
  - Writing
  - Research
work_hours:
  start: 8
  end: 18
diversity:
  days: 3
  threshold: 0.5
output:
  color: false
  width: 120
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Categories) != 2 || cfg.Categories[0] != "Writing" {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.WorkHours.Start != 8 || cfg.WorkHours.End != 18 {
		t.Errorf("WorkHours = %+v", cfg.WorkHours)
	}
	if cfg.Diversity.Days != 3 || cfg.Diversity.Threshold != 0.5 {
		t.Errorf("Diversity = %+v", cfg.Diversity)
	}
	if cfg.Output.Color || cfg.Output.Width != 120 {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("diversity:\n  days: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Diversity.Days != 5 {
		t.Errorf("Diversity.Days = %d, want 5", cfg.Diversity.Days)
	}
	if cfg.Diversity.Threshold != 0.70 {
		t.Errorf("Diversity.Threshold = %v, want default 0.70", cfg.Diversity.Threshold)
	}
	if cfg.WorkHours.End != 22 {
		t.Errorf("WorkHours.End = %d, want default 22", cfg.WorkHours.End)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/x/y"); got != filepath.Join(home, "x/y") {
		t.Errorf("expandPath(~/x/y) = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path must pass through, got %q", got)
	}
}
