package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedValidEnv populates a complete, valid environment for Load. Every
// variable is set explicitly so values leaking in from the host cannot
// change test outcomes. It returns the templates directory it created,
// seeded with both template files.
func seedValidEnv(t *testing.T) string {
	t.Helper()
	templates := t.TempDir()
	for _, name := range []string{"overview.svg", "languages.svg"} {
		require.NoError(t, os.WriteFile(filepath.Join(templates, name), []byte("<svg/>"), 0o644))
	}
	t.Setenv("GITHUB_ACTOR", "octocat")
	t.Setenv("ACCESS_TOKEN", "token-abc")
	t.Setenv("EXCLUDED_REPO", "")
	t.Setenv("EXCLUDED_LANGS", "")
	t.Setenv("EXCLUDE_FORKED", "")
	t.Setenv("LANGS_LIMIT", "")
	t.Setenv("TEMPLATES_DIR", templates)
	t.Setenv("OUTPUT_DIR", "")
	return templates
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied when optional variables are unset", func(t *testing.T) {
		templates := seedValidEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "octocat", cfg.Login)
		assert.Equal(t, "token-abc", cfg.Token)
		assert.Empty(t, cfg.ExcludedRepos)
		assert.Empty(t, cfg.ExcludedLangs)
		assert.True(t, cfg.ExcludeForked)
		assert.Equal(t, 10, cfg.LanguagesLimit)
		assert.Equal(t, templates, cfg.TemplatesDir)
		assert.Equal(t, "stats", cfg.OutputDir)
	})

	t.Run("exclusion lists are trimmed, lowercased, and deduplicated", func(t *testing.T) {
		seedValidEnv(t)
		t.Setenv("EXCLUDED_REPO", " Dotfiles, octocat/Hello-World ,, dotfiles ")
		t.Setenv("EXCLUDED_LANGS", "HTML, css")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"dotfiles": true, "octocat/hello-world": true}, cfg.ExcludedRepos)
		assert.Equal(t, map[string]bool{"html": true, "css": true}, cfg.ExcludedLangs)
	})

	t.Run("missing login is a configuration error", func(t *testing.T) {
		seedValidEnv(t)
		t.Setenv("GITHUB_ACTOR", "")

		_, err := Load()

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Contains(t, err.Error(), "GITHUB_ACTOR")
	})

	t.Run("missing token is a configuration error", func(t *testing.T) {
		seedValidEnv(t)
		t.Setenv("ACCESS_TOKEN", "")

		_, err := Load()

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Contains(t, err.Error(), "ACCESS_TOKEN")
	})

	t.Run("missing templates directory is a configuration error", func(t *testing.T) {
		seedValidEnv(t)
		t.Setenv("TEMPLATES_DIR", "/nonexistent/templates/dir")

		_, err := Load()

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Contains(t, err.Error(), "Templates directory not found")
	})

	t.Run("missing template file is a configuration error", func(t *testing.T) {
		templates := seedValidEnv(t)
		require.NoError(t, os.Remove(filepath.Join(templates, "languages.svg")))

		_, err := Load()

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Contains(t, err.Error(), "Template not found")
		assert.Contains(t, err.Error(), "languages.svg")
	})
}

func TestLoadExcludeForked(t *testing.T) {
	testCases := []struct {
		value     string
		expected  bool
		expectErr bool
	}{
		{value: "1", expected: true},
		{value: "true", expected: true},
		{value: "Yes", expected: true},
		{value: "y", expected: true},
		{value: "on", expected: true},
		{value: "0", expected: false},
		{value: "FALSE", expected: false},
		{value: "no", expected: false},
		{value: "n", expected: false},
		{value: "off", expected: false},
		{value: " true ", expected: true},
		{value: "", expected: true}, // unset defaults to excluding forks
		{value: "maybe", expectErr: true},
		{value: "2", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run("value "+tc.value, func(t *testing.T) {
			seedValidEnv(t)
			t.Setenv("EXCLUDE_FORKED", tc.value)

			cfg, err := Load()

			if tc.expectErr {
				var cerr *Error
				require.ErrorAs(t, err, &cerr)
				assert.Contains(t, err.Error(), "Invalid boolean value")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.ExcludeForked)
		})
	}
}

func TestLoadLanguagesLimit(t *testing.T) {
	testCases := []struct {
		value     string
		expected  int
		expectErr string
	}{
		{value: "", expected: 10},
		{value: "7", expected: 7},
		{value: "1", expected: 1},
		{value: "0", expectErr: "greater than zero"},
		{value: "-3", expectErr: "greater than zero"},
		{value: "ten", expectErr: "must be an integer"},
	}

	for _, tc := range testCases {
		t.Run("value "+tc.value, func(t *testing.T) {
			seedValidEnv(t)
			t.Setenv("LANGS_LIMIT", tc.value)

			cfg, err := Load()

			if tc.expectErr != "" {
				var cerr *Error
				require.ErrorAs(t, err, &cerr)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.LanguagesLimit)
		})
	}
}

func TestExclusionPredicates(t *testing.T) {
	cfg := &Config{
		ExcludedRepos: map[string]bool{"dotfiles": true, "octocat/archive": true},
		ExcludedLangs: map[string]bool{"html": true},
	}

	assert.True(t, cfg.IsRepoExcluded("Dotfiles", "octocat/Dotfiles"))
	assert.True(t, cfg.IsRepoExcluded("Archive", "octocat/Archive"))
	assert.False(t, cfg.IsRepoExcluded("archive", "someone-else/archive"))
	assert.False(t, cfg.IsRepoExcluded("hello-world", "octocat/hello-world"))

	assert.True(t, cfg.IsLanguageExcluded("HTML"))
	assert.False(t, cfg.IsLanguageExcluded("Go"))
}
