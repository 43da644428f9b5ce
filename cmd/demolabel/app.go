package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clinlab/demolabel/internal/config"
	"github.com/clinlab/demolabel/internal/form"
	"github.com/clinlab/demolabel/internal/gateway"
	"github.com/clinlab/demolabel/internal/logging"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/store"
	"github.com/clinlab/demolabel/internal/tui"
	"github.com/clinlab/demolabel/internal/ui"
)

// Global flags
var (
	configPath   string
	clientsFile  string
	printersFile string
	backend      string
	logLevel     string
)

// settings is filled by setup before any command runs.
var settings *config.Settings

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config dir)")
	rootCmd.PersistentFlags().StringVar(&clientsFile, "clients", "", "Client store file")
	rootCmd.PersistentFlags().StringVar(&printersFile, "printers", "", "Printer registry file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Client store backend (json, sqlite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup loads the settings, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	settings = s

	if err := logging.Initialize(logging.Options{Level: s.LogLevel, OutputPath: s.LogFile}); err != nil {
		return err
	}
	logging.Debug("Settings loaded",
		zap.String("clients_file", s.ClientsFile),
		zap.String("clients_backend", s.ClientsBackend),
		zap.String("printers_file", s.PrintersFile),
		zap.Duration("print_timeout", s.PrintTimeout),
	)
	return nil
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	var (
		s   *config.Settings
		err error
	)
	if configPath != "" {
		s, err = config.Load(configPath)
	} else {
		s, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("clients") {
		s.ClientsFile = clientsFile
	}
	if flags.Changed("printers") {
		s.PrintersFile = printersFile
	}
	if flags.Changed("backend") {
		s.ClientsBackend = backend
	}
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// openClients opens the configured client store. The returned close
// function must be called when done.
func openClients(s *config.Settings) (store.ClientStore, func() error, error) {
	switch s.ClientsBackend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(s.ClientsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open client database: %w", err)
		}
		return db, db.Close, nil
	default:
		return store.NewFileStore(s.ClientsFile), func() error { return nil }, nil
	}
}

func openRegistry(s *config.Settings) *printers.FileRegistry {
	return printers.NewFileRegistry(s.PrintersFile)
}

func newForm(s *config.Settings, clients store.ClientStore, gw gateway.Gateway) *form.Form {
	return form.New(clients, openRegistry(s), gw,
		form.WithDefaultPrinter(s.DefaultPrinter),
		form.WithPrintTimeout(s.PrintTimeout),
	)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

var errNoTerminal = errors.New("the label form needs an interactive terminal; use 'demolabel print' from scripts")

func runForm(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return errNoTerminal
	}

	clients, closeClients, err := openClients(settings)
	if err != nil {
		return err
	}
	defer closeClients()

	ctx, cancel := signalContext()
	defer cancel()

	f := newForm(settings, clients, gateway.NewClient(settings.PrintTimeout))
	logging.Info("Starting label form",
		zap.String("printer", f.Value(form.Printer)),
		zap.String("clients", settings.ClientsFile),
	)
	return tui.Run(ctx, f, tui.WithDarkMode(settings.DarkMode))
}
