package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "nkllon.yaml"

	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/nkllon"

	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"

	// EnvProjectRoot overrides the project root when set.
	EnvProjectRoot = "NKLLON_PROJECT_ROOT"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/nkllon/config.yaml)
// 3. Project config (nkllon.yaml in current or parent directories)
// 4. NKLLON_PROJECT_ROOT environment variable
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config",
			slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
			if config.Project.Root == "" {
				config.Project.Root = filepath.Dir(projectConfigPath)
			}
		} else {
			l.logger.Warn("Failed to load project config",
				slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if envRoot := os.Getenv(EnvProjectRoot); envRoot != "" {
		config.Project.Root = envRoot
		l.logger.Debug("Project root from environment", slog.String("path", envRoot))
	}

	if config.Project.Root == "" {
		if cwd, err := os.Getwd(); err == nil {
			config.Project.Root = cwd
			l.logger.Debug("Using current directory as project root", slog.String("path", cwd))
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// userConfigPath returns the user-level config file path.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks up from the current directory looking for the
// project config file.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
