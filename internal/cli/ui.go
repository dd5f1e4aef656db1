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
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")
	colorBlue  = lipgloss.Color("75")
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleFile    = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// summary returns the line printed after a conversion run.
func summary(total, failed int, elapsed time.Duration) string {
	took := styleDim.Render(fmt.Sprintf("(%s)", elapsed.Round(time.Millisecond)))
	if failed == 0 {
		return styleSuccess.Render(iconSuccess) + " converted " + plural(total, "file") + " " + took
	}
	return styleError.Render(iconError) + fmt.Sprintf(" %d of %s failed ", failed, plural(total, "file")) + took
}

// checkSummary returns the line printed after checking files.
func checkSummary(total, bad int) string {
	if bad == 0 {
		return styleSuccess.Render(iconSuccess) + " " + plural(total, "file") + " checked, all pico SVG"
	}
	return styleError.Render(iconError) + fmt.Sprintf(" %d of %s checked are not pico SVG", bad, plural(total, "file"))
}
