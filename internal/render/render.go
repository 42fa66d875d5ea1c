// Package render turns collected metrics into SVG artifacts by literal
// placeholder substitution.
package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/iliadmitriev/github-metrics/internal/config"
	"github.com/iliadmitriev/github-metrics/internal/domain"
)

// Renderer fills the SVG templates and writes the results to the output
// directory.
type Renderer struct {
	templatesDir string
	outputDir    string
	logger       *log.Logger
}

// NewRenderer creates a Renderer and makes sure the output directory exists.
func NewRenderer(cfg *config.Config, logger *log.Logger) (*Renderer, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Renderer{
		templatesDir: cfg.TemplatesDir,
		outputDir:    cfg.OutputDir,
		logger:       logger,
	}, nil
}

// RenderLanguages writes languages.svg with the progress bar and the
// language list substituted in.
func (r *Renderer) RenderLanguages(metrics *domain.MetricsResult) error {
	template, err := os.ReadFile(filepath.Join(r.templatesDir, "languages.svg"))
	if err != nil {
		return fmt.Errorf("failed to read languages template: %w", err)
	}

	output := strings.NewReplacer(
		"{{ progress }}", progressMarkup(metrics.Languages),
		"{{ lang_list }}", langListMarkup(metrics.Languages),
	).Replace(string(template))

	return r.write("languages.svg", output)
}

// RenderOverview writes overview.svg with every scalar metric substituted in.
func (r *Renderer) RenderOverview(metrics *domain.MetricsResult) error {
	template, err := os.ReadFile(filepath.Join(r.templatesDir, "overview.svg"))
	if err != nil {
		return fmt.Errorf("failed to read overview template: %w", err)
	}

	output := strings.NewReplacer(
		"{{ name }}", metrics.DisplayName,
		"{{ stars }}", domain.FormatCount(int64(metrics.TotalStars)),
		"{{ forks }}", domain.FormatCount(int64(metrics.TotalForks)),
		"{{ contributions }}", domain.FormatCount(int64(metrics.TotalContributions)),
		"{{ lines_changed }}", domain.FormatCount(metrics.TotalLinesChanged),
		"{{ views }}", domain.FormatCount(int64(metrics.TotalViews)),
		"{{ repos }}", domain.FormatCount(int64(metrics.RepositoryCount)),
	).Replace(string(template))

	return r.write("overview.svg", output)
}

func (r *Renderer) write(name, content string) error {
	outputPath := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	r.logger.Printf("💾 Wrote %s", outputPath)
	return nil
}

// progressMarkup builds the stacked bar segments, one span per language.
// Without any languages the bar collapses to a single neutral segment.
func progressMarkup(languages []domain.LanguageShare) string {
	if len(languages) == 0 {
		return `<span class="progress-item" style="background-color: #ededed; width: 100%;"></span>`
	}

	var b strings.Builder
	for _, lang := range languages {
		width := lang.Percent
		if width < 0 {
			width = 0
		}
		fmt.Fprintf(&b, `<span class="progress-item" style="background-color: %s; width: %.2f%%;"></span>`, lang.Color, width)
	}
	return b.String()
}

// langListMarkup builds the legend items with staggered animation delays.
func langListMarkup(languages []domain.LanguageShare) string {
	if len(languages) == 0 {
		return `<li style="animation-delay: 0ms"><span class="lang">No tracked languages</span><span class="percent">0%</span></li>`
	}

	items := make([]string, 0, len(languages))
	for i, lang := range languages {
		items = append(items, fmt.Sprintf(
			`<li style="animation-delay: %dms"><span class="lang">%s</span><span class="percent">%.2f%%</span></li>`,
			i*120, lang.Name, lang.Percent,
		))
	}
	return strings.Join(items, "\n")
}
