package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "edigest",
		Short:         "Parse and validate EDI, EDIFACT, and XML interchange files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProcessCmd(),
		newListCmd(),
		newShowCmd(),
		newServeCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
