// Package ui renders the output of the non-interactive demolabel commands.
//
// Unlike the tui package, nothing here reads input. Commands print a
// header, a table or a result box and exit:
//
//	out := ui.NewOutput(cmd.OutOrStdout())
//	out.PrintHeader("Print Label", "demolabel print", []ui.Param{
//	    {Key: "Printer", Value: "LABREQ5"},
//	})
//	out.PrintSuccess("Label sent", nil)
//
// Logging is controlled separately via DEMOLABEL_LOG_LEVEL, so styled output
// and zap output do not interleave unless asked to.
package ui
