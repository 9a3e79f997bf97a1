// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akhsjain/tech-blogs/internal/draft"
	"github.com/akhsjain/tech-blogs/internal/history"
	"github.com/akhsjain/tech-blogs/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List drafts recorded by previous runs",
	Long: `History reads the SQLite ledger that generate appends to after each
successful run. Records are listed newest first. Use --topic to see every
draft written for one topic, e.g. after a run that failed to update the
queue produced a duplicate.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records")
	historyCmd.Flags().String("topic", "", "only records whose slug matches this topic")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var records []types.DraftRecord
	if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
		records, err = store.BySlug(ctx, draft.Slug(topic))
	} else {
		limit, _ := cmd.Flags().GetInt("limit")
		records, err = store.List(ctx, limit)
	}
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return history.WriteJSON(os.Stdout, records)
	case "yaml":
		return history.WriteYAML(os.Stdout, records)
	case "table", "":
		return printHistoryTable(records)
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func printHistoryTable(records []types.DraftRecord) error {
	if len(records) == 0 {
		printer.Info("No drafts recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-24s  %s\n", "Created", "Topic", "Model", "Path")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-24s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), truncate(r.Topic, 40), r.Model, r.Path)
	}
	fmt.Fprintf(os.Stdout, "\n%d drafts\n", len(records))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
