package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/edigest/internal/config"
	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
	"github.com/dgallion1/edigest/internal/pipeline"
	"github.com/dgallion1/edigest/internal/store"
	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var (
		dbPath         string
		formatOverride string
		mappingPath    string
	)

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Detect, parse, validate, and store interchange files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if mappingPath != "" {
				cfg.MappingPath = mappingPath
			}

			var override interchange.Format
			if formatOverride != "" {
				override = interchange.ParseFormat(formatOverride)
				if override == interchange.FormatUnknown {
					return fmt.Errorf("unsupported format override: %s", formatOverride)
				}
			}

			maps, err := loadMappings(cfg.MappingPath)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			proc := pipeline.NewProcessor(st, maps, log)
			ctx := context.Background()

			failed := 0
			for _, path := range args {
				if err := processOne(ctx, proc, path, override, cmd); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite database (default from DB_PATH)")
	cmd.Flags().StringVar(&formatOverride, "format", "", "skip detection and force a format (EDI, EDIFACT, XML)")
	cmd.Flags().StringVar(&mappingPath, "mappings", "", "YAML file overriding the tag→field mapping tables")
	return cmd
}

func processOne(ctx context.Context, proc *pipeline.Processor, path string, override interchange.Format, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	outcome, err := proc.Process(ctx, path, data, override)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "  detected:   %s (confidence %.2f)\n", outcome.Detection.Format, outcome.Detection.Confidence)
	fmt.Fprintf(out, "  fields:     %d\n", outcome.FieldCount)
	fmt.Fprintf(out, "  validation: %s (%d errors, %d warnings)\n", outcome.Status, len(outcome.Errors), len(outcome.Warnings))
	for _, issue := range outcome.Errors {
		fmt.Fprintf(out, "    ERROR   %s: %s\n", issue.Code, issue.Message)
	}
	for _, issue := range outcome.Warnings {
		fmt.Fprintf(out, "    WARNING %s: %s\n", issue.Code, issue.Message)
	}
	fmt.Fprintf(out, "  stored as file %d\n", outcome.FileID)
	return nil
}

func loadMappings(path string) (*mapping.Set, error) {
	if path == "" {
		return mapping.Defaults(), nil
	}
	return mapping.Load(path)
}
