package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent resolutions",
	Long:  "List recent resolutions from the history store, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		entries, err := st.ListHistory(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no resolutions recorded")
			return nil
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"When", "Query", "Outcome", "Name", "Source"})
		for _, entry := range entries {
			source := entry.NameSource
			if entry.DataSource != "" {
				source += "→" + entry.DataSource
			}
			t.AppendRow(table.Row{
				entry.ResolvedAt.Format(time.RFC3339),
				entry.Query,
				string(entry.Outcome),
				entry.Name,
				source,
			})
		}
		fmt.Println(t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
}
