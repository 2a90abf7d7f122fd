package output

import (
	"fmt"
	"strings"

	"github.com/boardlens/boardlens/internal/core"
)

// MarkdownFormatter renders a resolution as Markdown.
type MarkdownFormatter struct{}

// FormatResolution renders the resolution.
func (f *MarkdownFormatter) FormatResolution(res *core.Resolution) (string, error) {
	if res == nil {
		return "", nil
	}

	var b strings.Builder

	switch res.Outcome {
	case core.OutcomeSuccess:
		rec := res.Game
		fmt.Fprintf(&b, "## %s\n\n", rec.Name)
		if rec.CNName != "" {
			fmt.Fprintf(&b, "**%s** (%s)\n\n", rec.CNName, rec.Year)
		}
		fmt.Fprintf(&b, "- Players: %s (best: %s)\n", playerRange(rec), rec.BestPlayerCount)
		fmt.Fprintf(&b, "- Play time: %s\n", timeRange(rec))
		fmt.Fprintf(&b, "- Rating: %s (%s rated), weight %s\n", rec.AverageRating, rec.UsersRated, rec.AvgWeight)
		fmt.Fprintf(&b, "- Rank: overall %s, strategy %s\n", rec.OverallRank, rec.StrategyRank)
		if rec.LanguageDependence != "" {
			fmt.Fprintf(&b, "- Language: %s\n", rec.LanguageDependence)
		}
		if len(rec.Categories) > 0 {
			fmt.Fprintf(&b, "- Categories: %s\n", strings.Join(rec.Categories, ", "))
		}
		if len(rec.Mechanics) > 0 {
			fmt.Fprintf(&b, "- Mechanics: %s\n", strings.Join(rec.Mechanics, ", "))
		}
		fmt.Fprintf(&b, "- Link: %s\n", rec.CatalogURL)
		fmt.Fprintf(&b, "\n_Source: %s_\n", rec.Provenance.Label())
	case core.OutcomeFailure:
		rec := res.Failure
		fmt.Fprintf(&b, "## %s\n\n", rec.Name)
		b.WriteString("Name found, but no catalog data could be retrieved.\n")
		if rec.CatalogURL != "" {
			fmt.Fprintf(&b, "\n- Link: %s\n", rec.CatalogURL)
		}
		fmt.Fprintf(&b, "\n_Source: %s_\n", rec.Provenance.Label())
	default:
		fmt.Fprintf(&b, "No result found for %q.\n", res.Query)
	}

	return b.String(), nil
}
