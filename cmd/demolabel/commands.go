package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinlab/demolabel/internal/discovery"
	"github.com/clinlab/demolabel/internal/form"
	"github.com/clinlab/demolabel/internal/gateway"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/ui"
)

func init() {
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(scanCmd)
}

// printRequest holds the print command flags.
type printRequest struct {
	Printer  string
	ClientID string
	Name     string
	Alias    string
	Tests    string
	Date     string
	Quantity int
	Save     bool
	DryRun   bool
}

var printReq printRequest

// printCmd drives the label form without a terminal
var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print labels without opening the form",
	Long: `Fill in the label form from flags and print.

The client is loaded from the store first, exactly as pressing Enter in the
client id field does; --name, --alias and --tests override what was loaded.
The same validation as the form applies.`,
	Example: `  # Print two labels for a stored client on the default printer
  demolabel print --client A1 --tests CBC,TSH --quantity 2

  # New client, saved before printing
  demolabel print --client B2 --name "Dr Jones" --tests BMP --save

  # Show the label instead of sending it
  demolabel print --client A1 --dry-run`,
	RunE: runPrint,
}

func init() {
	f := printCmd.Flags()
	f.StringVar(&printReq.Printer, "printer", "", "Printer name (default from config)")
	f.StringVar(&printReq.ClientID, "client", "", "Client id")
	f.StringVar(&printReq.Name, "name", "", "Physician name")
	f.StringVar(&printReq.Alias, "alias", "", "Alias or clinic name")
	f.StringVar(&printReq.Tests, "tests", "", "Test codes")
	f.StringVar(&printReq.Date, "date", "", "Date, MM/DD/YYYY (default today)")
	f.IntVar(&printReq.Quantity, "quantity", 1, "Number of labels")
	f.BoolVar(&printReq.Save, "save", false, "Save the client before printing")
	f.BoolVar(&printReq.DryRun, "dry-run", false, "Print the label to stdout instead of the printer; --save is ignored")
	_ = printCmd.MarkFlagRequired("client")
}

func runPrint(cmd *cobra.Command, args []string) error {
	clients, closeClients, err := openClients(settings)
	if err != nil {
		return err
	}
	defer closeClients()

	var gw gateway.Gateway = gateway.NewClient(settings.PrintTimeout)
	recorder := &gateway.Recorder{}
	if printReq.DryRun {
		gw = recorder
	}

	ctx, cancel := signalContext()
	defer cancel()

	f := newForm(settings, clients, gw)
	out := ui.NewOutput(cmd.OutOrStdout())
	if err := printJob(ctx, f, printReq, out); err != nil {
		return err
	}

	if printReq.DryRun {
		for _, job := range recorder.Jobs {
			out.Newline()
			out.Println(fmt.Sprintf("# %d cop(ies) to %s", job.Quantity, job.Endpoint))
			_, _ = cmd.OutOrStdout().Write(job.Document.Bytes())
			out.Newline()
		}
	}
	return nil
}

var errInvalidLabel = errors.New("invalid data entered")

// printJob fills f from req and prints. Validation failures are reported as
// errInvalidLabel with the failed checks listed on out.
func printJob(ctx context.Context, f *form.Form, req printRequest, out *ui.Output) error {
	if req.Printer != "" {
		f.UpdateField(form.Printer, req.Printer)
	}
	f.UpdateField(form.ClientID, req.ClientID)
	if _, err := f.LoadClient(); err != nil {
		return err
	}

	overrides := []struct {
		field form.Element
		value string
	}{
		{form.Name, req.Name},
		{form.Alias, req.Alias},
		{form.Tests, req.Tests},
		{form.Date, req.Date},
	}
	for _, o := range overrides {
		if o.value != "" {
			f.UpdateField(o.field, o.value)
		}
	}
	f.UpdateField(form.Quantity, strconv.Itoa(req.Quantity))

	state := f.State()
	out.PrintHeader("Print Label", "demolabel print", []ui.Param{
		{Key: "Printer", Value: state.PrinterName},
		{Key: "Client", Value: state.ClientID},
		{Key: "Name", Value: state.Name},
		{Key: "Tests", Value: state.TestCodes},
		{Key: "Date", Value: state.Date},
		{Key: "Copies", Value: state.Quantity},
	})

	if req.Save && req.DryRun {
		out.PrintWarning("Client not saved", []ui.Param{{Key: "Reason", Value: "dry run"}})
	} else if req.Save {
		saved, err := f.SaveClient()
		if err != nil {
			return err
		}
		if saved {
			out.PrintSuccess("Client saved", []ui.Param{{Key: "Client", Value: state.ClientID}})
		}
	}

	problems := f.PrintProblems()
	printed, err := f.PrintLabel(ctx)
	if err != nil {
		out.PrintError("Print failed", err, hintLines(err))
		return err
	}
	if !printed {
		out.PrintError("Invalid data entered", nil, problems)
		return errInvalidLabel
	}

	if state.Quantity == "0" {
		out.PrintWarning("Nothing printed", []ui.Param{{Key: "Copies", Value: "0"}})
		return nil
	}
	out.PrintSuccess("Label sent", []ui.Param{
		{Key: "Printer", Value: state.PrinterName},
		{Key: "Copies", Value: state.Quantity},
	})
	return nil
}

// hintLines turns gateway.Hint into troubleshooting bullets.
func hintLines(err error) []string {
	if !gateway.IsNetworkError(err) {
		return nil
	}
	var tips []string
	for _, line := range strings.Split(gateway.Hint(err), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		tips = append(tips, line)
	}
	return tips
}

// Scan command flags
var (
	scanTimeout int
	scanSave    string
	scanPick    int
)

// scanCmd discovers printers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for label printers on the network",
	Long: `Scan for raw (port 9100) label printers using mDNS/DNS-SD discovery.

With --save, the chosen printer is written to the printer registry under
the given name so it can be selected in the form.`,
	Example: `  # Scan for 5 seconds (default)
  demolabel scan

  # Add the second printer found as LABREQ6
  demolabel scan --save LABREQ6 --pick 2`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
	scanCmd.Flags().StringVar(&scanSave, "save", "", "Save a discovered printer to the registry under this name")
	scanCmd.Flags().IntVar(&scanPick, "pick", 1, "Which discovered printer --save uses (1-based)")
}

func runScan(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scanning for label printers (timeout: %ds)...\n\n", scanTimeout)

	ctx, cancel := signalContext()
	defer cancel()

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	found, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(found) == 0 {
		fmt.Fprintln(w, "No printers found.")
		fmt.Fprintln(w, "\nTroubleshooting:")
		fmt.Fprintln(w, "  - Ensure the printer is powered on and on the same network")
		fmt.Fprintln(w, "  - Check that Bonjour/mDNS is enabled on the printer")
		fmt.Fprintln(w, "  - Try increasing --timeout for slower networks")
		fmt.Fprintln(w, "  - Add the printer's IP address to printers.json by hand")
		return nil
	}

	printScanResults(w, found)

	if scanSave == "" {
		fmt.Fprintf(w, "Use 'demolabel scan --save NAME --pick N' to add a printer to %s\n", settings.PrintersFile)
		return nil
	}
	return savePrinter(w, openRegistry(settings), found, scanSave, scanPick)
}

func printScanResults(w io.Writer, found []*discovery.Printer) {
	fmt.Fprintf(w, "Found %d printer(s):\n\n", len(found))
	for i, p := range found {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Instance)
		fmt.Fprintf(w, "   Model:   %s\n", p.Model())
		fmt.Fprintf(w, "   Address: %s:%d\n", p.IP, p.Port)
		if note := p.GetMetadata("note"); note != "" {
			fmt.Fprintf(w, "   Note:    %s\n", note)
		}
		fmt.Fprintf(w, "   Suggest: %s\n\n", discovery.SuggestName(p))
	}
}

func savePrinter(w io.Writer, reg *printers.FileRegistry, found []*discovery.Printer, name string, pick int) error {
	if pick < 1 || pick > len(found) {
		return fmt.Errorf("--pick %d out of range (found %d printer(s))", pick, len(found))
	}
	p := found[pick-1]
	name = strings.ToUpper(name)

	if err := reg.Add(name, p.Endpoint()); err != nil {
		return fmt.Errorf("failed to save printer: %w", err)
	}
	fmt.Fprintf(w, "Saved %s as %s in %s\n", p.Endpoint(), name, reg.Path())
	return nil
}
