// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguageColor is substituted whenever the API reports a language
// without a color, and fills the progress bar when no languages remain
// after filtering.
const DefaultLanguageColor = "#ededed"

// LanguageShare holds one language's accumulated byte size across all
// counted repositories together with its share of the grand total.
type LanguageShare struct {
	Name    string  `json:"name"`
	Size    int64   `json:"size"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
}

// MetricsResult is the outcome of one full collection run.
// It is the core domain entity of this application.
type MetricsResult struct {
	Login              string          `json:"login"`
	DisplayName        string          `json:"display_name"`
	TotalStars         int             `json:"total_stars"`
	TotalForks         int             `json:"total_forks"`
	TotalContributions int             `json:"total_contributions"`
	TotalLinesChanged  int64           `json:"total_lines_changed"`
	TotalViews         int             `json:"total_views"`
	RepositoryCount    int             `json:"repository_count"`
	Languages          []LanguageShare `json:"languages"`
}

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders a counter with thousands separators, e.g. 1475 as "1,475".
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}
