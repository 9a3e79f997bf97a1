// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/akhsjain/tech-blogs/internal/queue"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect or extend the topic queue",
}

// --- list subcommand ---

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print pending topics in the order they will be drafted",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := queue.NewFileStore(loadConfig().Queue.Path)
		topics, err := store.Load(context.Background())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(topics)
		}
		if len(topics) == 0 {
			printer.Info("No topics left")
			return nil
		}
		for i, t := range topics {
			printer.Print("%3d  %s", i+1, t)
		}
		return nil
	},
}

// --- add subcommand ---

var queueAddCmd = &cobra.Command{
	Use:   "add <topic>...",
	Short: "Append topics to the back of the queue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := queue.NewFileStore(loadConfig().Queue.Path)
		topics, err := queue.Add(context.Background(), store, args...)
		if err != nil {
			return err
		}
		printer.Success("Queued %d topic(s); %d pending", len(args), len(topics))
		return nil
	},
}

func init() {
	queueListCmd.Flags().Bool("json", false, "output the queue as JSON")

	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueAddCmd)
	rootCmd.AddCommand(queueCmd)
}
