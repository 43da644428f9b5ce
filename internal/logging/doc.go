// Package logging provides structured logging for demolabel.
//
// It wraps a global zap logger with convenience functions. Logging is silent
// by default; set DEMOLABEL_LOG_LEVEL (or the log_level config key, or the
// --log-level flag) to one of debug, info, warn or error to enable it.
//
// While the interactive form is running the terminal belongs to the UI, so
// output goes to stderr or to the file named by log_file:
//
//	if err := logging.Initialize(logging.Options{Level: "debug", OutputPath: "demolabel.log"}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Domain helpers:
//
//	logging.LogPrintJob("LABREQ5", "10.1.2.3:9100", "A1", 2)
//	logging.LogClientSaved("A1", true)
//	logging.LogRawBytes("ZPL sent", payload) // debug level only
package logging
