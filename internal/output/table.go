package output

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/boardlens/boardlens/internal/core"
)

// TableFormatter renders a resolution as an ASCII table.
type TableFormatter struct{}

// FormatResolution renders the resolution.
func (f *TableFormatter) FormatResolution(res *core.Resolution) (string, error) {
	if res == nil {
		return "", nil
	}

	switch res.Outcome {
	case core.OutcomeSuccess:
		return f.formatGame(res.Game), nil
	case core.OutcomeFailure:
		return f.formatFailure(res.Failure), nil
	default:
		return "No result found for \"" + res.Query + "\"", nil
	}
}

func (f *TableFormatter) formatGame(rec *core.GameRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})

	rows := []table.Row{
		{"Name", rec.Name},
		{"CN Name", rec.CNName},
		{"Year", rec.Year},
		{"Players", playerRange(rec)},
		{"Best Players", rec.BestPlayerCount},
		{"Play Time", timeRange(rec)},
		{"Min Age", rec.MinAge},
		{"Rating", rec.AverageRating + " (" + rec.UsersRated + " rated)"},
		{"Weight", rec.AvgWeight},
		{"Overall Rank", rec.OverallRank},
		{"Strategy Rank", rec.StrategyRank},
		{"Language", rec.LanguageDependence},
		{"Categories", strings.Join(rec.Categories, ", ")},
		{"Mechanics", strings.Join(rec.Mechanics, ", ")},
		{"URL", rec.CatalogURL},
	}
	for _, row := range rows {
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"Source", rec.Provenance.Label()})

	return t.Render()
}

func (f *TableFormatter) formatFailure(rec *core.FailureRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})

	t.AppendRow(table.Row{"Name", rec.Name})
	t.AppendRow(table.Row{"CN Name", rec.CNName})
	if rec.CatalogID != "" {
		t.AppendRow(table.Row{"Catalog ID", rec.CatalogID})
	}
	if rec.CatalogURL != "" {
		t.AppendRow(table.Row{"URL", rec.CatalogURL})
	}
	t.AppendRow(table.Row{"Status", "name found, no catalog data"})
	t.AppendFooter(table.Row{"Source", rec.Provenance.Label()})

	return t.Render()
}
