package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgallion1/edigest/internal/config"
	"github.com/dgallion1/edigest/internal/store"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			files, err := st.ListFiles(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "no files processed")
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(out, "%6d  %-8s %-8s %8d B  %s  %s\n",
					f.ID, f.Format, f.Status, f.SizeBytes, f.ProcessedAt, f.Filename)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite database (default from DB_PATH)")
	return cmd
}

func newShowCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "show <file-id>",
		Short: "Export a processed file's fields and issues as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id: %s", args[0])
			}

			st, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			export, err := st.ExportFile(cmd.Context(), fileID)
			if err != nil {
				return err
			}
			if export == nil {
				return fmt.Errorf("file %d not found", fileID)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(export)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite database (default from DB_PATH)")
	return cmd
}

func openStore(dbPath string) (*store.Store, error) {
	if dbPath == "" {
		dbPath = config.Load().DBPath
	}
	return store.Open(dbPath)
}
