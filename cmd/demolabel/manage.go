package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clinlab/demolabel/internal/config"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/store"
	"github.com/clinlab/demolabel/internal/ui"
)

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsImportCmd)
	printersCmd.AddCommand(printersListCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(printersCmd)
	rootCmd.AddCommand(configCmd)
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Inspect and import client records",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, closeClients, err := openClients(settings)
		if err != nil {
			return err
		}
		defer closeClients()

		records, err := clients.All()
		if err != nil {
			return err
		}
		out := ui.NewOutput(cmd.OutOrStdout())
		if len(records) == 0 {
			out.Println("No clients stored in " + settings.ClientsFile)
			return nil
		}
		out.PrintTable([]string{"ID", "NAME", "ALIAS", "ORDER CODES"}, clientRows(records))
		return nil
	},
}

func clientRows(records map[string]store.ClientRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, id := range store.SortedIDs(records) {
		rec := records[id]
		rows = append(rows, []string{id, rec.Name, rec.Alias, rec.OrderCodes})
	}
	return rows
}

var clientsImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Copy clients from a clients.json file into the configured store",
	Long: `Copy every record of a clients.json file into the configured client
store, e.g. when moving to the sqlite backend. Existing records with the same
id are updated; fields the form does not know about are kept.`,
	Example: `  demolabel --backend sqlite --clients clients.db clients import clients.json`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("cannot read %s: %w", args[0], err)
		}

		dst, closeClients, err := openClients(settings)
		if err != nil {
			return err
		}
		defer closeClients()

		n, err := store.Copy(dst, store.NewFileStore(args[0]))
		if err != nil {
			return fmt.Errorf("import stopped after %d record(s): %w", n, err)
		}
		ui.NewOutput(cmd.OutOrStdout()).PrintSuccess("Clients imported", []ui.Param{
			{Key: "Records", Value: fmt.Sprint(n)},
			{Key: "Into", Value: settings.ClientsFile},
		})
		return nil
	},
}

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "Inspect the printer registry",
}

var printersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured printers",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := openRegistry(settings)
		rows, err := printerRows(reg)
		if err != nil {
			return err
		}
		out := ui.NewOutput(cmd.OutOrStdout())
		if len(rows) == 0 {
			out.Println("No printers configured in " + reg.Path())
			return nil
		}
		out.PrintTable([]string{"NAME", "ADDRESS", "DEFAULT"}, rows)
		return nil
	},
}

func printerRows(reg printers.Registry) ([][]string, error) {
	names, err := reg.Names()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		address := "(invalid)"
		if ep, err := reg.Lookup(name); err == nil {
			address = ep.String()
		}
		def := ""
		if strings.EqualFold(name, settings.DefaultPrinter) {
			def = "*"
		}
		rows = append(rows, []string{name, address, def})
	}
	return rows, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the demolabel configuration file",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	// Runs without loading the (possibly broken) existing file.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err := config.NewSettings().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
