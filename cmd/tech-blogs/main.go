// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tech-blogs CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akhsjain/tech-blogs/internal/logging"
	"github.com/akhsjain/tech-blogs/internal/output"
	"github.com/akhsjain/tech-blogs/internal/secrets"
	"github.com/akhsjain/tech-blogs/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from the secrets directory at startup.
	loadedSecrets map[string]string

	printer = output.NewPrinter(output.ColorAuto)
	logger  = slog.New(slog.DiscardHandler)
)

// rootCmd is the base command for the tech-blogs CLI.
var rootCmd = &cobra.Command{
	Use:   "tech-blogs",
	Short: "Turn a queue of topics into technical article drafts",
	Long: `tech-blogs keeps a queue of article topics in topics.json. Each run of
"tech-blogs generate" takes the first topic, asks a hosted language model to
write the article, saves it as drafts/<date>-<slug>.md and removes the topic
from the queue. A failed run leaves the queue untouched, so the next run
retries the same topic.

The API key is read from GROQ_API_KEY (or ANTHROPIC_API_KEY / OPENAI_API_KEY
for the other providers), a .env file, or .secrets/<provider>-api-key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := output.ParseColorMode(viper.GetString("color"))
		if err != nil {
			return err
		}
		printer = output.NewPrinter(mode)

		level := viper.GetString("log.level")
		if viper.GetBool("verbose") {
			level = "debug"
		}
		logger = logging.New(os.Stderr, level)

		if err := secrets.LoadEnvFile(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./tech-blogs.yaml or ~/.config/tech-blogs/tech-blogs.yaml)")
	flags.String("queue", "", "topic queue file (default topics.json)")
	flags.String("drafts-dir", "", "directory for generated drafts (default drafts)")
	flags.String("color", "auto", "color output: auto, always, or never")
	flags.BoolP("verbose", "v", false, "debug logging")

	_ = viper.BindPFlag("queue.path", flags.Lookup("queue"))
	_ = viper.BindPFlag("drafts.dir", flags.Lookup("drafts-dir"))
	_ = viper.BindPFlag("color", flags.Lookup("color"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

func initConfig() {
	viper.SetDefault("queue.path", "topics.json")
	viper.SetDefault("drafts.dir", "drafts")
	viper.SetDefault("generator.timeout", "2m")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", filepath.Join(".tech-blogs", "history.db"))
	viper.SetDefault("log.level", "info")
	viper.SetDefault("secrets_dir", ".secrets")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tech-blogs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tech-blogs"))
		}
	}

	viper.SetEnvPrefix("TECH_BLOGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the run configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Queue:  types.QueueConfig{Path: viper.GetString("queue.path")},
		Drafts: types.DraftConfig{Dir: viper.GetString("drafts.dir")},
		Generator: types.GeneratorConfig{
			Preset:     viper.GetString("generator.preset"),
			Provider:   types.Provider(viper.GetString("generator.provider")),
			Model:      viper.GetString("generator.model"),
			BaseURL:    viper.GetString("generator.base_url"),
			PromptFile: viper.GetString("generator.prompt_file"),
			APIKey:     viper.GetString("generator.api_key"),
			MaxTokens:  viper.GetInt("generator.max_tokens"),
			Timeout:    viper.GetDuration("generator.timeout"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
	}
}

// reportError prints err, and the raw service reply for generation failures.
func reportError(err error) {
	var gerr *types.GenerationError
	if errors.As(err, &gerr) && gerr.Payload != "" {
		printer.Payload("API error response:", gerr.Payload)
	}
	printer.Error("%v", err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}
