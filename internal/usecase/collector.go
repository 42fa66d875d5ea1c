// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/iliadmitriev/github-metrics/internal/config"
	"github.com/iliadmitriev/github-metrics/internal/domain"
	"github.com/iliadmitriev/github-metrics/internal/gateway"
)

// Collector is the use case for collecting account-wide GitHub metrics.
// It walks the paginated repository listing and folds every page into a
// single result.
type Collector struct {
	fetcher gateway.Fetcher
	cfg     *config.Config
	logger  *log.Logger
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, cfg *config.Config, logger *log.Logger) *Collector {
	return &Collector{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

// languageTotal accumulates one language across every repository. The
// color is fixed the first time the language is seen.
type languageTotal struct {
	size  int64
	color string
}

// Collect performs the main business logic. It pages through the
// account's repositories one request at a time, drains overflowing
// language listings, and aggregates everything into a MetricsResult.
func (c *Collector) Collect(ctx context.Context) (*domain.MetricsResult, error) {
	var (
		displayName string
		totalStars  int
		totalForks  int
		totalLines  int64
		repoCount   int
	)
	totals := make(map[string]*languageTotal)

	// isFork: false keeps forks out of the listing; nil requests both.
	var forkFilter *bool
	if c.cfg.ExcludeForked {
		sourcesOnly := false
		forkFilter = &sourcesOnly
	}

	var cursor *string
	for {
		page, err := c.fetcher.FetchRepositoryPage(ctx, c.cfg.Login, cursor, forkFilter)
		if err != nil {
			return nil, err
		}
		if page.Owner == nil {
			return nil, config.Errorf("GitHub owner '%s' was not found or is not accessible.", c.cfg.Login)
		}
		if displayName == "" {
			displayName = firstNonEmpty(page.Owner.Name, page.Owner.Login, c.cfg.Login)
		}

		for _, repo := range page.Repositories {
			if repo.Name == "" {
				continue
			}
			nameWithOwner := repo.NameWithOwner
			if nameWithOwner == "" {
				nameWithOwner = repo.Name
			}
			if c.cfg.IsRepoExcluded(repo.Name, nameWithOwner) {
				c.logger.Printf("⏭️ Skipping repository %s (excluded).", nameWithOwner)
				continue
			}

			edges := repo.Languages.Edges
			if repo.Languages.PageInfo.HasNextPage {
				more, err := c.fetchAdditionalLanguages(ctx, nameWithOwner, repo.Name, repo.Languages.PageInfo.EndCursor)
				if err != nil {
					return nil, err
				}
				edges = append(edges, more...)
			}

			var accepted []string
			for _, edge := range edges {
				langName := edge.Node.Name
				if langName == "" || c.cfg.IsLanguageExcluded(langName) {
					continue
				}
				size, ok := parseSize(edge.Size)
				if !ok || size <= 0 {
					continue
				}
				color := edge.Node.Color
				if color == "" {
					color = domain.DefaultLanguageColor
				}
				if bucket, seen := totals[langName]; seen {
					bucket.size += size
				} else {
					totals[langName] = &languageTotal{size: size, color: color}
				}
				totalLines += size
				accepted = append(accepted, fmt.Sprintf("%s: %s", langName, domain.FormatCount(size)))
			}

			totalStars += repo.StargazerCount
			totalForks += repo.ForkCount
			repoCount++

			languageSummary := "no tracked languages"
			if len(accepted) > 0 {
				languageSummary = strings.Join(accepted, ", ")
			}
			c.logger.Printf("Repo %s — ⭐ stars=%s 🍴 forks=%s 💻 languages=%s",
				nameWithOwner,
				domain.FormatCount(int64(repo.StargazerCount)),
				domain.FormatCount(int64(repo.ForkCount)),
				languageSummary,
			)
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		next := page.PageInfo.EndCursor
		cursor = &next
	}

	// A failed contributions lookup degrades to zero instead of aborting
	// the whole run.
	contributions, err := c.fetcher.FetchContributions(ctx, c.cfg.Login)
	if err != nil {
		c.logger.Printf("⚠️ Failed to fetch contributions: %v", err)
		contributions = 0
	}

	return &domain.MetricsResult{
		Login:              c.cfg.Login,
		DisplayName:        displayName,
		TotalStars:         totalStars,
		TotalForks:         totalForks,
		TotalContributions: contributions,
		TotalLinesChanged:  totalLines,
		TotalViews:         0, // Views are not available via GraphQL without elevated scopes.
		RepositoryCount:    repoCount,
		Languages:          c.buildLanguageShares(totals, totalLines),
	}, nil
}

// fetchAdditionalLanguages drains the remaining language pages of a
// repository whose inline listing overflowed.
func (c *Collector) fetchAdditionalLanguages(ctx context.Context, nameWithOwner, name, cursor string) ([]gateway.LanguageEdge, error) {
	owner := c.cfg.Login
	if i := strings.Index(nameWithOwner, "/"); i >= 0 {
		owner = nameWithOwner[:i]
	}

	var edges []gateway.LanguageEdge
	for cursor != "" {
		page, err := c.fetcher.FetchLanguagePage(ctx, owner, name, cursor)
		if err != nil {
			return nil, err
		}
		edges = append(edges, page.Edges...)
		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}
	return edges, nil
}

// buildLanguageShares turns the accumulated totals into ranked shares.
// Percentages are taken against the grand total before the list is cut
// to the configured limit, so truncation never inflates the survivors.
// Equal sizes rank alphabetically to keep the output stable.
func (c *Collector) buildLanguageShares(totals map[string]*languageTotal, totalLines int64) []domain.LanguageShare {
	if totalLines <= 0 || len(totals) == 0 {
		return []domain.LanguageShare{}
	}

	shares := make([]domain.LanguageShare, 0, len(totals))
	for name, bucket := range totals {
		color := bucket.color
		if color == "" {
			color = domain.DefaultLanguageColor
		}
		if len(color) > 7 {
			color = color[:7]
		}
		shares = append(shares, domain.LanguageShare{
			Name:    name,
			Size:    bucket.size,
			Color:   color,
			Percent: float64(bucket.size) / float64(totalLines) * 100,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Size != shares[j].Size {
			return shares[i].Size > shares[j].Size
		}
		return shares[i].Name < shares[j].Name
	})

	if len(shares) > c.cfg.LanguagesLimit {
		shares = shares[:c.cfg.LanguagesLimit]
	}
	return shares
}

// parseSize reads a language size edge, accepting JSON integers only.
// Anything else, quoted numbers included, is discarded rather than
// failing the run.
func parseSize(raw json.RawMessage) (int64, bool) {
	size, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return size, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
