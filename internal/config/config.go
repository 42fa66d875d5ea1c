// Package config resolves the immutable settings for a collection run
// from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Error reports missing or invalid configuration, including a target
// account the API cannot resolve.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Errorf builds a configuration Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Config holds the settings for one collection run. It is not mutated
// after Load returns.
type Config struct {
	Login          string
	Token          string
	ExcludedRepos  map[string]bool
	ExcludedLangs  map[string]bool
	ExcludeForked  bool
	LanguagesLimit int
	TemplatesDir   string
	OutputDir      string
}

// rawEnv mirrors the environment variables before validation. The fork
// toggle and the limit stay strings here: their accepted forms are wider
// (yes/y/on) or stricter (> 0) than the default parsers allow.
type rawEnv struct {
	Login         string   `env:"GITHUB_ACTOR"`
	Token         string   `env:"ACCESS_TOKEN"`
	ExcludedRepos []string `env:"EXCLUDED_REPO" envSeparator:","`
	ExcludedLangs []string `env:"EXCLUDED_LANGS" envSeparator:","`
	ExcludeForked string   `env:"EXCLUDE_FORKED"`
	LangsLimit    string   `env:"LANGS_LIMIT"`
	TemplatesDir  string   `env:"TEMPLATES_DIR"`
	OutputDir     string   `env:"OUTPUT_DIR"`
}

// Load reads a .env file when one is present, parses the environment,
// and validates it into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return nil, Errorf("parse environment: %v", err)
	}

	if raw.Login == "" {
		return nil, Errorf("Environment variable GITHUB_ACTOR is required.")
	}
	if raw.Token == "" {
		return nil, Errorf("Environment variable ACCESS_TOKEN is required.")
	}

	excludeForked, err := parseBool(raw.ExcludeForked, true)
	if err != nil {
		return nil, err
	}

	limit := 10
	if raw.LangsLimit != "" {
		limit, err = strconv.Atoi(raw.LangsLimit)
		if err != nil {
			return nil, Errorf("LANGS_LIMIT must be an integer.")
		}
		if limit <= 0 {
			return nil, Errorf("LANGS_LIMIT must be greater than zero.")
		}
	}

	templatesDir := raw.TemplatesDir
	if templatesDir == "" {
		templatesDir = "templates"
	}
	outputDir := raw.OutputDir
	if outputDir == "" {
		outputDir = "stats"
	}

	if _, err := os.Stat(templatesDir); err != nil {
		return nil, Errorf("Templates directory not found: %s", templatesDir)
	}
	// Both templates must exist before any API call is made.
	for _, name := range []string{"overview.svg", "languages.svg"} {
		path := filepath.Join(templatesDir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, Errorf("Template not found: %s", path)
		}
	}

	return &Config{
		Login:          raw.Login,
		Token:          raw.Token,
		ExcludedRepos:  toSet(raw.ExcludedRepos),
		ExcludedLangs:  toSet(raw.ExcludedLangs),
		ExcludeForked:  excludeForked,
		LanguagesLimit: limit,
		TemplatesDir:   templatesDir,
		OutputDir:      outputDir,
	}, nil
}

// IsRepoExcluded reports whether a repository is excluded by its bare
// name or its qualified owner/name form, ignoring case.
func (c *Config) IsRepoExcluded(name, nameWithOwner string) bool {
	return c.ExcludedRepos[strings.ToLower(name)] || c.ExcludedRepos[strings.ToLower(nameWithOwner)]
}

// IsLanguageExcluded reports whether a language name is excluded, ignoring case.
func (c *Config) IsLanguageExcluded(name string) bool {
	return c.ExcludedLangs[strings.ToLower(name)]
}

// parseBool accepts the toggle literals 1/true/yes/y/on and
// 0/false/no/n/off. Unset or empty values fall back to def; anything
// else is a configuration error.
func parseBool(raw string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def, nil
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	}
	return false, Errorf("Invalid boolean value: %s", raw)
}

// toSet lowercases and trims the comma-separated exclusion entries,
// dropping empties.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		set[item] = true
	}
	return set
}
