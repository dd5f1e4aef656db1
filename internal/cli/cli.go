// seehuhn.de/go/picosvg - reduce SVG documents to a minimal subset
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cli implements the picosvg command-line interface.
//
// The root command converts SVG files to pico SVG, the check subcommand
// reports the ways in which files deviate from pico SVG. Settings are read
// from a TOML file and can be overridden by flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is passed to the commands through their context, and to the converter as
// a [log/slog] handler.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appName is used for the configuration directory.
const appName = "picosvg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives converted documents written to standard output.
	Out io.Writer

	// Err receives the summary lines and check reports.
	Err io.Writer
}

// New creates a new CLI instance. Log messages and reports are written to
// errW, converted documents to out.
func New(out, errW io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errW, level),
		Out:    out,
		Err:    errW,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	var flags convertFlags
	root := &cobra.Command{
		Use:   "picosvg [flags] FILE...",
		Short: "Reduce SVG files to pico SVG",
		Long: `picosvg rewrites SVG documents into a minimal subset: a single <defs>
element with gradients, followed by filled paths in absolute coordinates.
Strokes, clip paths, transforms, <use> references and nested <svg>
elements are all eliminated.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			return c.convertFiles(cmd.Context(), args, cfg)
		},
	}
	flags.register(root)
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "read settings from this TOML file")

	root.AddCommand(c.checkCommand())
	return root
}
