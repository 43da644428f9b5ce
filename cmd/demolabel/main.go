// Demolabel prints demographic specimen labels on networked label printers.
//
// Running without arguments opens the label form in the terminal. The
// operator picks a printer, loads or creates a referring client, enters the
// tests, date and number of copies and prints.
//
// Usage:
//
//	demolabel [command] [flags]
//
// See 'demolabel --help' for the scripting and maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinlab/demolabel/internal/logging"
	"github.com/clinlab/demolabel/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "demolabel",
	Short: "Demographics Label Printer",
	Long: `Capture referring client details and print demographic labels.

Client records live in clients.json (or a SQLite database) and printers in
printers.json, both in the working directory unless configured otherwise.

If no command is specified, the interactive form opens.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runForm,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No settings needed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "demolabel %s\n", version.Full())
	},
}
