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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/picosvg"
	"seehuhn.de/go/picosvg/svg"
)

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "check FILE...",
		Short:        "Report where files deviate from pico SVG",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			bad := 0
			for _, name := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				violations, err := checkFile(name)
				if err != nil {
					logger.Error("cannot check file", "file", name, "err", err)
					bad++
					continue
				}
				for _, v := range violations {
					fmt.Fprintln(c.Err, styleFile.Render(name)+": "+v.String())
				}
				if len(violations) > 0 {
					bad++
				}
				logger.Debug("checked", "file", name, "violations", len(violations))
			}
			fmt.Fprintln(c.Err, checkSummary(len(args), bad))
			if bad > 0 {
				return fmt.Errorf("%d of %d files are not pico SVG", bad, len(args))
			}
			return nil
		},
	}
}

func checkFile(name string) ([]picosvg.Violation, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := svg.Parse(f)
	if err != nil {
		return nil, err
	}
	return picosvg.Check(doc), nil
}
