package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.Ontology != filepath.Join("ontology", "hardware_ontology.ttl") {
		t.Errorf("unexpected default ontology path: %s", cfg.Paths.Ontology)
	}
	if cfg.Paths.Shapes != filepath.Join("ontology", "system_constraints.yaml") {
		t.Errorf("unexpected default shapes path: %s", cfg.Paths.Shapes)
	}
	if cfg.Validation.AbortOnFirst {
		t.Error("validation should be exhaustive by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing ontology path",
			modify:  func(c *Config) { c.Paths.Ontology = "" },
			wantErr: true,
		},
		{
			name:    "missing shapes path",
			modify:  func(c *Config) { c.Paths.Shapes = "" },
			wantErr: true,
		},
		{
			name:    "negative binding budget",
			modify:  func(c *Config) { c.Validation.MaxBindings = -1 },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMergeOverlaysNonZeroFields(t *testing.T) {
	base := DefaultConfig()
	base.Merge(&Config{
		Project:    ProjectConfig{Root: "/srv/topology"},
		Validation: ValidationConfig{MaxBindings: 500},
	})

	if base.Project.Root != "/srv/topology" {
		t.Errorf("root not merged: %s", base.Project.Root)
	}
	if base.Validation.MaxBindings != 500 {
		t.Errorf("maxBindings not merged: %d", base.Validation.MaxBindings)
	}
	if base.Paths.Ontology == "" {
		t.Error("merge should not clear defaults")
	}
}

func TestDeploymentPath(t *testing.T) {
	root := t.TempDir()
	deployments := filepath.Join(root, "data", "deployments")
	if err := os.MkdirAll(deployments, 0o755); err != nil {
		t.Fatal(err)
	}
	stagingFile := filepath.Join(deployments, "staging.ttl")
	if err := os.WriteFile(stagingFile, []byte("@prefix : <http://nkllon.com/sys#> .\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Project.Root = root

	if got := cfg.DeploymentPath(EnvProd); got != filepath.Join(root, "data", "physical_deployment.ttl") {
		t.Errorf("prod path = %s", got)
	}
	if got := cfg.DeploymentPath("staging"); got != stagingFile {
		t.Errorf("staging path = %s, want %s", got, stagingFile)
	}
	if got := cfg.DeploymentPath("dev"); got != filepath.Join(root, "data", "physical_deployment.ttl") {
		t.Errorf("dev without env file should fall back to default, got %s", got)
	}
}

func TestExpandSources(t *testing.T) {
	root := t.TempDir()
	extra := filepath.Join(root, "data", "extra")
	if err := os.MkdirAll(extra, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.ttl", "b.ttl"} {
		if err := os.WriteFile(filepath.Join(extra, name), []byte("@prefix : <http://nkllon.com/sys#> .\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := DefaultConfig()
	cfg.Project.Root = root
	cfg.Paths.Sources = []string{"data/**/*.ttl", "data/extra/a.ttl"}

	files, err := cfg.ExpandSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expanded %d files, want 2 (deduplicated): %v", len(files), files)
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nkllon.yaml")
	doc := `
project:
  root: /srv/topology
validation:
  abortOnFirst: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Project.Root != "/srv/topology" {
		t.Errorf("root = %s", cfg.Project.Root)
	}
	if !cfg.Validation.AbortOnFirst {
		t.Error("abortOnFirst should be set")
	}
	if cfg.Paths.Data == "" {
		t.Error("unspecified fields should keep defaults")
	}
}
