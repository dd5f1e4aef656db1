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

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"seehuhn.de/go/picosvg"
)

// Config holds the settings which can be given in the configuration file.
// Zero values select the library defaults.
type Config struct {
	Precision     int     `toml:"precision"`
	MaxDepth      int     `toml:"max_depth"`
	Lenient       bool    `toml:"lenient"`
	Tolerance     float64 `toml:"tolerance"`
	ClipToViewBox bool    `toml:"clip_to_viewbox"`
	Jobs          int     `toml:"jobs"`
	Output        string  `toml:"output"`
}

// Options returns the conversion options for c.
func (c *Config) Options() *picosvg.Options {
	return &picosvg.Options{
		Precision:     c.Precision,
		MaxDepth:      c.MaxDepth,
		Lenient:       c.Lenient,
		Tolerance:     c.Tolerance,
		ClipToViewBox: c.ClipToViewBox,
	}
}

func (c *Config) jobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// configPath returns the default location of the configuration file
// ($XDG_CONFIG_HOME/picosvg/config.toml).
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the configuration file at path. If path is empty, the
// default location is used and a missing file is not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// convertFlags holds the values of the conversion flags.
type convertFlags struct {
	configFile string
	Config
}

func (f *convertFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.Precision, "precision", 0, "fractional digits of output coordinates (default 3, negative for integers)")
	fl.IntVar(&f.MaxDepth, "max-depth", 0, "maximal nesting of <use> and clip path references (default 32)")
	fl.BoolVar(&f.Lenient, "lenient", false, "ignore references to missing elements")
	fl.Float64Var(&f.Tolerance, "tolerance", 0, "flattening tolerance for strokes and clip paths (default: relative to the viewBox)")
	fl.BoolVar(&f.ClipToViewBox, "clip-to-viewbox", false, "remove everything outside the viewBox")
	fl.StringVarP(&f.Output, "output", "o", "", "write results to this directory")
	fl.IntVarP(&f.Jobs, "jobs", "j", 0, "number of files converted in parallel (default: number of CPUs)")
}

// config merges the configuration file with the flags which were set on
// the command line.
func (f *convertFlags) config(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(f.configFile)
	if err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("precision") {
		cfg.Precision = f.Precision
	}
	if changed("max-depth") {
		cfg.MaxDepth = f.MaxDepth
	}
	if changed("lenient") {
		cfg.Lenient = f.Lenient
	}
	if changed("tolerance") {
		cfg.Tolerance = f.Tolerance
	}
	if changed("clip-to-viewbox") {
		cfg.ClipToViewBox = f.ClipToViewBox
	}
	if changed("output") {
		cfg.Output = f.Output
	}
	if changed("jobs") {
		cfg.Jobs = f.Jobs
	}
	return cfg, nil
}
