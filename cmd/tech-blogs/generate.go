// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akhsjain/tech-blogs/internal/draft"
	"github.com/akhsjain/tech-blogs/internal/generate"
	"github.com/akhsjain/tech-blogs/internal/history"
	"github.com/akhsjain/tech-blogs/internal/pipeline"
	"github.com/akhsjain/tech-blogs/internal/queue"
	"github.com/akhsjain/tech-blogs/internal/secrets"
	"github.com/akhsjain/tech-blogs/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a draft for the next topic in the queue",
	Long: `Generate takes the first topic from the queue, asks the configured
model to write an article about it, saves the article to
<drafts-dir>/<YYYY-MM-DD>-<slug>.md and writes the rest of the queue back.

An empty queue is not an error. If the model call fails the queue is left
unchanged and the command exits non-zero.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("preset", "", "prompt/model preset (see `tech-blogs presets`)")
	generateCmd.Flags().String("provider", "", "API provider: groq, openai, or anthropic")
	generateCmd.Flags().String("model", "", "model identifier (overrides the preset)")
	generateCmd.Flags().String("prompt-file", "", "text/template prompt file; receives {{.Topic}}")
	generateCmd.Flags().Duration("timeout", 0, "request timeout (default 2m)")
	generateCmd.Flags().Bool("no-history", false, "do not record the draft in the history ledger")
	generateCmd.Flags().Bool("dry-run", false, "print the prompt and target file without calling the API")

	_ = viper.BindPFlag("generator.preset", generateCmd.Flags().Lookup("preset"))
	_ = viper.BindPFlag("generator.provider", generateCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("generator.model", generateCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("generator.prompt_file", generateCmd.Flags().Lookup("prompt-file"))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Generator.Timeout = timeout
	}
	ctx := context.Background()
	store := queue.NewFileStore(cfg.Queue.Path)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return dryRunGenerate(ctx, store, cfg)
	}

	preset, err := generate.LookupPreset(cfg.Generator.Preset)
	if err != nil {
		return err
	}
	provider, model := generate.Resolve(cfg.Generator, preset)

	runner := &pipeline.Runner{
		Queue:     store,
		Generator: &keyedGenerator{cfg: cfg.Generator},
		Drafts:    draft.NewWriter(),
		DraftsDir: cfg.Drafts.Dir,
		Provider:  provider,
		Model:     model,
		Logger:    logger.With("provider", provider, "model", model),
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Enabled && !noHistory {
		h, err := history.NewStore(cfg.History.Path)
		if err != nil {
			printer.Warning("history ledger unavailable at %s: %v", cfg.History.Path, err)
		} else {
			defer h.Close()
			runner.History = h
		}
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case pipeline.NoOp:
		printer.Info("No topics left")
	case pipeline.Created:
		printer.Success("Draft created: %s", res.Draft.Path)
		logger.Debug("queue remaining", "size", len(res.Remaining))
	}
	return nil
}

// keyedGenerator resolves the API key and builds the backend on the first
// Generate call, so a run that finds the queue empty needs no credential.
type keyedGenerator struct {
	cfg types.GeneratorConfig
}

func (g *keyedGenerator) Generate(ctx context.Context, topic types.Topic) (string, error) {
	if err := resolveAPIKey(&g.cfg); err != nil {
		return "", err
	}
	gen, err := generate.New(g.cfg)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, topic)
}

// resolveAPIKey fills cfg.APIKey from the environment or secrets directory.
func resolveAPIKey(cfg *types.GeneratorConfig) error {
	preset, err := generate.LookupPreset(cfg.Preset)
	if err != nil {
		return err
	}
	provider, _ := generate.Resolve(*cfg, preset)
	cfg.APIKey = secrets.APIKey(provider, cfg.APIKey, loadedSecrets)
	if cfg.APIKey == "" {
		return fmt.Errorf("no API key for %s: set %s, add it to .env, or write it to %s/%s",
			provider, secrets.EnvVar(provider), viper.GetString("secrets_dir"), secrets.KeyFile(provider))
	}
	return nil
}

func dryRunGenerate(ctx context.Context, store queue.Store, cfg types.Config) error {
	topics, err := store.Load(ctx)
	if err != nil {
		return err
	}
	topic, rest, err := queue.PopFirst(topics)
	if errors.Is(err, queue.ErrEmpty) {
		printer.Info("No topics left")
		return nil
	}

	tmpl, err := generate.ResolveTemplate(cfg.Generator)
	if err != nil {
		return err
	}
	prompt, err := generate.RenderPrompt(tmpl, topic)
	if err != nil {
		return err
	}

	path := draft.FileName(cfg.Drafts.Dir, topic, time.Now())
	printer.Print("%s", prompt)
	printer.Info("Would write %s (%d topic(s) would remain)", path, len(rest))
	if draft.NewWriter().Exists(path) {
		printer.Warning("%s already exists and would be overwritten", path)
	}
	return nil
}
