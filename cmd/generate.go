// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliadmitriev/github-metrics/internal/config"
	"github.com/iliadmitriev/github-metrics/internal/domain"
	"github.com/iliadmitriev/github-metrics/internal/gateway"
	"github.com/iliadmitriev/github-metrics/internal/render"
	"github.com/iliadmitriev/github-metrics/internal/usecase"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Collects account statistics and renders the SVG artifacts",
	Long: `Collects stars, forks, contributions, and language usage for the account
named by GITHUB_ACTOR, then renders overview.svg and languages.svg from the
templates directory into the output directory. Authentication uses the
ACCESS_TOKEN environment variable; a .env file in the working directory is
loaded when present.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Progress and summaries always go to stderr; page-level chatter
		// only shows up with --verbose.
		progressLogger := log.New(os.Stderr, "", 0)
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		debugLogger := log.New(io.Discard, "", log.LstdFlags)
		if verbose {
			debugLogger.SetOutput(os.Stderr)
		}

		cfg, err := config.Load()
		if err != nil {
			progressLogger.Printf("❌ Configuration error: %v", err)
			os.Exit(1)
		}

		githubGateway := gateway.NewGitHubGateway(cfg.Token, debugLogger)
		collector := usecase.NewCollector(githubGateway, cfg, progressLogger)

		metrics, err := collector.Collect(ctx)
		if err != nil {
			progressLogger.Printf("❌ Failed to collect GitHub metrics: %v", err)
			os.Exit(1)
		}

		if err := renderArtifacts(cfg, metrics, progressLogger); err != nil {
			progressLogger.Printf("❌ Failed to render templates: %v", err)
			os.Exit(1)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			jsonData, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				progressLogger.Printf("❌ Failed to marshal metrics to JSON: %v", err)
				os.Exit(1)
			}
			fmt.Println(string(jsonData))
		}

		printSummary(metrics, progressLogger)
	},
}

// renderArtifacts writes both SVG files, languages first.
func renderArtifacts(cfg *config.Config, metrics *domain.MetricsResult, logger *log.Logger) error {
	renderer, err := render.NewRenderer(cfg, logger)
	if err != nil {
		return err
	}
	if err := renderer.RenderLanguages(metrics); err != nil {
		return err
	}
	return renderer.RenderOverview(metrics)
}

// printSummary logs the closing block with the collected totals and the
// top five languages.
func printSummary(metrics *domain.MetricsResult, logger *log.Logger) {
	logger.Printf("\n📊 Final GitHub Statistics Summary:")
	logger.Printf("👤 User: %s", metrics.DisplayName)
	logger.Printf("⭐ Total Stars: %s", domain.FormatCount(int64(metrics.TotalStars)))
	logger.Printf("🍴 Total Forks: %s", domain.FormatCount(int64(metrics.TotalForks)))
	logger.Printf("📈 Total Contributions: %s", domain.FormatCount(int64(metrics.TotalContributions)))
	logger.Printf("💻 Total Lines Changed: %s", domain.FormatCount(metrics.TotalLinesChanged))
	logger.Printf("👀 Total Repository Views: %s", domain.FormatCount(int64(metrics.TotalViews)))
	logger.Printf("📦 Total Repositories: %s", domain.FormatCount(int64(metrics.RepositoryCount)))
	logger.Printf("🛠️ Top Languages:")
	for i, lang := range metrics.Languages {
		if i == 5 {
			break
		}
		logger.Printf("   %d. %s (%.2f%%)", i+1, lang.Name, lang.Percent)
	}
	logger.Printf("✅ GitHub metrics collection completed successfully!")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Bool("json", false, "Also print the collected metrics as JSON to stdout")
}
