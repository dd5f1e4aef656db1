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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/picosvg"
	"seehuhn.de/go/picosvg/svg"
)

// result records the outcome for one input file.
type result struct {
	name string
	err  error
}

// convertFiles converts the named files. A single file without an output
// directory is written to c.Out. Files are processed in parallel, and a
// failure does not stop the remaining conversions.
func (c *CLI) convertFiles(ctx context.Context, files []string, cfg Config) error {
	logger := loggerFromContext(ctx)
	if cfg.Output == "" && len(files) > 1 {
		return errors.New("--output is required for more than one input file")
	}
	if cfg.Output != "" {
		if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
			return err
		}
	}

	start := time.Now()
	results := make([]result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs())
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts := cfg.Options()
			opts.Logger = slogger(logger).With("file", name)
			results[i] = result{name: name, err: c.convertFile(name, cfg.Output, opts)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			logger.Error("conversion failed", "file", r.name, "err", r.err)
		} else {
			logger.Debug("converted", "file", r.name)
		}
	}
	if cfg.Output != "" || failed > 0 {
		fmt.Fprintln(c.Err, summary(len(files), failed, time.Since(start)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func (c *CLI) convertFile(name, outDir string, opts *picosvg.Options) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	doc, err := svg.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	out, err := picosvg.Convert(doc, opts)
	if err != nil {
		return err
	}

	if outDir == "" {
		_, err = out.WriteTo(c.Out)
		return err
	}
	return os.WriteFile(outputName(outDir, name), out.Bytes(), 0o644)
}

// outputName returns the path of the converted version of the input file
// name inside dir.
func outputName(dir, name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".svg")
}
