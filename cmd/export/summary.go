package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Belphemur/filmed/internal/export"
	"github.com/Belphemur/filmed/internal/models"
)

// Summary is what one export run did.
type Summary struct {
	RunID        string
	Username     string
	Query        string // Set instead of Username for catalog query runs
	Counts       models.UserCounts
	Records      int
	RecordErrors int
	Resolved     int
	Unresolved   int
	Skipped      int
	Files        map[string]int
}

// Render formats the summary as a two-column table.
func (s *Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Export " + s.RunID)
	tw.AppendHeader(table.Row{"Step", "Count"})

	type row struct {
		label string
		value int
	}
	var rows []row
	if s.Query != "" {
		tw.AppendRow(table.Row{"Query", s.Query})
		rows = []row{{"Hits read", s.Records}}
	} else {
		tw.AppendRow(table.Row{"User", s.Username})
		rows = []row{
			{"Rated films", s.Counts.Movies},
			{"Rated shows", s.Counts.Shows},
			{"Watch-list", s.Counts.Watchlist},
			{"Records read", s.Records},
			{"Records failed", s.RecordErrors},
		}
	}
	rows = append(rows,
		row{"Resolved", s.Resolved},
		row{"Not found", s.Unresolved},
		row{"Skipped", s.Skipped},
	)
	for _, r := range rows {
		tw.AppendRow(table.Row{r.label, strconv.Itoa(r.value)})
	}
	tw.AppendSeparator()
	for _, name := range []string{export.GenericFile, export.WatchlistFile, export.FavoriteFile} {
		tw.AppendRow(table.Row{name, strconv.Itoa(s.Files[name])})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
