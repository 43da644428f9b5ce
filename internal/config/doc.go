// Package config manages the demolabel settings file.
//
// Settings are stored as YAML in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/demolabel/config.yaml or $HOME/.config/demolabel/config.yaml
//   - macOS: $HOME/.config/demolabel/config.yaml
//   - Windows: %LOCALAPPDATA%\demolabel\config.yaml
//
// A missing file is not an error; Load returns the defaults, which point at
// clients.json and printers.json in the working directory. Writes go through
// a temporary file and a rename so a crash never leaves a truncated file.
package config
