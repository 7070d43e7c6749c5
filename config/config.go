// Package config provides configuration loading and management for the
// topology tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Environment names accepted by deployment-path resolution.
const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Config represents the complete topology tool configuration.
type Config struct {
	Project    ProjectConfig    `yaml:"project"`
	Paths      PathsConfig      `yaml:"paths"`
	Validation ValidationConfig `yaml:"validation"`
}

// ProjectConfig locates the project.
type ProjectConfig struct {
	// Root is the project root path. Empty means auto-detect (loader).
	Root string `yaml:"root"`
}

// PathsConfig locates the graph sources, relative to the project root.
type PathsConfig struct {
	// Ontology is the hardware ontology file.
	Ontology string `yaml:"ontology"`

	// Shapes is the shape catalog file.
	Shapes string `yaml:"shapes"`

	// Data is the default (prod) deployment data file.
	Data string `yaml:"data"`

	// Sources are extra glob patterns (doublestar syntax) whose matches
	// are merged into the deployment store.
	Sources []string `yaml:"sources"`
}

// ValidationConfig tunes the validation engine.
type ValidationConfig struct {
	// AbortOnFirst stops evaluation at the first blocking violation.
	AbortOnFirst bool `yaml:"abortOnFirst"`

	// MaxBindings caps the pattern matcher's intermediate binding set.
	// Zero uses the engine default.
	MaxBindings int `yaml:"maxBindings"`
}

// DefaultConfig returns a Config with the conventional project layout.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Ontology: filepath.Join("ontology", "hardware_ontology.ttl"),
			Shapes:   filepath.Join("ontology", "system_constraints.yaml"),
			Data:     filepath.Join("data", "physical_deployment.ttl"),
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.Ontology == "" {
		return fmt.Errorf("paths.ontology is required")
	}
	if c.Paths.Shapes == "" {
		return fmt.Errorf("paths.shapes is required")
	}
	if c.Paths.Data == "" {
		return fmt.Errorf("paths.data is required")
	}
	if c.Validation.MaxBindings < 0 {
		return fmt.Errorf("validation.maxBindings must not be negative")
	}
	return nil
}

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other.Project.Root != "" {
		c.Project.Root = other.Project.Root
	}
	if other.Paths.Ontology != "" {
		c.Paths.Ontology = other.Paths.Ontology
	}
	if other.Paths.Shapes != "" {
		c.Paths.Shapes = other.Paths.Shapes
	}
	if other.Paths.Data != "" {
		c.Paths.Data = other.Paths.Data
	}
	if len(other.Paths.Sources) > 0 {
		c.Paths.Sources = other.Paths.Sources
	}
	if other.Validation.AbortOnFirst {
		c.Validation.AbortOnFirst = true
	}
	if other.Validation.MaxBindings != 0 {
		c.Validation.MaxBindings = other.Validation.MaxBindings
	}
}

// LoadFromFile loads configuration from a YAML file, overlaying defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// OntologyPath returns the absolute hardware ontology path.
func (c *Config) OntologyPath() string {
	return c.resolve(c.Paths.Ontology)
}

// ShapesPath returns the absolute shape catalog path.
func (c *Config) ShapesPath() string {
	return c.resolve(c.Paths.Shapes)
}

// DeploymentPath returns the deployment data file for an environment. The
// prod environment uses the default data path; other environments use
// data/deployments/<env>.ttl when it exists, falling back to the default.
func (c *Config) DeploymentPath(environment string) string {
	if environment == "" || environment == EnvProd {
		return c.resolve(c.Paths.Data)
	}
	envFile := c.resolve(filepath.Join(filepath.Dir(c.Paths.Data), "deployments", environment+".ttl"))
	if _, err := os.Stat(envFile); err == nil {
		return envFile
	}
	return c.resolve(c.Paths.Data)
}

// ExpandSources resolves the configured source globs to concrete file paths,
// deduplicated, in pattern order.
func (c *Config) ExpandSources() ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)
	for _, source := range c.Paths.Sources {
		matches, err := doublestar.FilepathGlob(c.resolve(source))
		if err != nil {
			return nil, fmt.Errorf("resolve source pattern %q: %w", source, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				resolved = append(resolved, m)
			}
		}
	}
	return resolved, nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Project.Root == "" {
		return path
	}
	return filepath.Join(c.Project.Root, path)
}
