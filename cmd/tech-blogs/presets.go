// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/akhsjain/tech-blogs/internal/generate"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in prompt/model presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range generate.PresetNames() {
			p, err := generate.LookupPreset(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == generate.DefaultPreset {
				marker = "*"
			}
			printer.Print("%s %-12s  %-10s  %s", marker, p.Name, p.Provider, p.Model)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
