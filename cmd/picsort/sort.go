package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/picsort/internal/cli"
	"github.com/Veraticus/picsort/internal/config"
	"github.com/Veraticus/picsort/internal/engine"
	"github.com/Veraticus/picsort/internal/llm"
)

func sortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Classify images and copy them into category folders",
		Long: `Classify every supported image (.png .jpg .jpeg .gif .webp) in the source folder
and copy it into the folder of the category the model picks. Images the model
cannot place go to failed/. Images already present in the output tree are skipped,
so an interrupted run can simply be started again.`,
		Example: `  picsort sort --source ~/Pictures/inbox --output ~/Pictures/sorted
  picsort sort --source ./in --output ./out --categories cats.yaml --mode text --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSort(cmd)
		},
	}

	cmd.Flags().String("source", "", "folder of images to sort")
	cmd.Flags().String("output", "", "output root for category folders")
	cmd.Flags().String("categories", config.DefaultCategoriesFile, "category definition file (.json, .yaml)")
	cmd.Flags().String("mode", string(llm.ModeStructured), "response mode (structured, text)")
	cmd.Flags().String("log-dir", "", "folder for run logs (default: output root)")
	cmd.Flags().Bool("fail-fast", false, "abort the run on the first classification service error")
	cmd.Flags().Bool("retry-failed", false, "classify again images whose only copy is in failed/")
	cmd.Flags().Bool("dry-run", false, "classify and log without copying files")
	cmd.Flags().Bool("plain", false, "print one line per image instead of a progress bar")
	cmd.Flags().Bool("ledger", false, "also record the run in the SQLite ledger (see 'picsort runs')")

	_ = viper.BindPFlag("sort.source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("sort.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("sort.categories", cmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag("sort.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("sort.log_dir", cmd.Flags().Lookup("log-dir"))
	_ = viper.BindPFlag("sort.fail_fast", cmd.Flags().Lookup("fail-fast"))
	_ = viper.BindPFlag("sort.retry_failed", cmd.Flags().Lookup("retry-failed"))
	_ = viper.BindPFlag("sort.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("sort.plain", cmd.Flags().Lookup("plain"))
	_ = viper.BindPFlag("database.enabled", cmd.Flags().Lookup("ledger"))

	return cmd
}

func runSort(cmd *cobra.Command) error {
	source, err := requireDir("sort.source", "source")
	if err != nil {
		return err
	}
	output, err := requireDir("sort.output", "output")
	if err != nil {
		return err
	}
	logDir, err := config.ResolvePath(viper.GetString("sort.log_dir"), "")
	if err != nil {
		return fmt.Errorf("failed to resolve log-dir: %w", err)
	}

	// Registry problems are fatal before any image is sent.
	categories, catPath, err := loadCategories()
	if err != nil {
		return err
	}
	slog.Info("Loaded categories", "file", catPath, "count", categories.Len())

	mode, err := llm.ParseMode(viper.GetString("sort.mode"))
	if err != nil {
		return err
	}

	classifier, err := createClassifier(mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := []engine.Option{
		engine.WithObserver(cli.NewProgress(out, viper.GetBool("sort.plain"))),
		engine.WithLogger(slog.Default()),
	}

	if viper.GetBool("database.enabled") {
		store, storeErr := initStorage(cmd.Context())
		if storeErr != nil {
			slog.Warn("Run ledger unavailable, continuing without it", "error", storeErr)
		} else {
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("Failed to close ledger", "error", closeErr)
				}
			}()
			opts = append(opts, engine.WithRecorder(store))
		}
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())
	defer handler.Stop()

	cfg := engine.Config{
		SourceDir:   source,
		OutputDir:   output,
		LogDir:      logDir,
		FailFast:    viper.GetBool("sort.fail_fast"),
		RetryFailed: viper.GetBool("sort.retry_failed"),
		DryRun:      viper.GetBool("sort.dry_run"),
	}

	run, err := engine.New(classifier, opts...).Run(ctx, cfg, categories)
	if run != nil {
		fmt.Fprintln(out, cli.RenderSummary(*run, cfg.DryRun))
		fmt.Fprintln(out, cli.CompletionMessage(*run))
	}

	if err != nil && errors.Is(err, context.Canceled) && handler.WasInterrupted() {
		return nil
	}
	return err
}
