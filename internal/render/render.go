// Package render turns simulation summaries into terminal output.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/mtgtools/revealsim/internal/sim"
)

// Renderer writes an analysis summary for human consumption.
type Renderer interface {
	RenderSummary(w io.Writer, summary map[int]sim.Summary) error
}

// Terminal renders a colored table plus a success-rate bar chart sized to
// the terminal width.
type Terminal struct {
	// Width overrides terminal detection when > 0 (useful in tests).
	Width int
}

func (t Terminal) width() int {
	if t.Width > 0 {
		return t.Width
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// RenderSummary prints one row per reveal size, ascending.
func (t Terminal) RenderSummary(w io.Writer, summary map[int]sim.Summary) error {
	xs := make([]int, 0, len(summary))
	for x := range summary {
		xs = append(xs, x)
	}
	sort.Ints(xs)

	header := fmt.Sprintf("%-8s %-8s %-10s %-8s %s",
		"reveal", "mean", "success", "stddev", "chart")
	if _, err := fmt.Fprintln(w, color.CyanString(header)); err != nil {
		return err
	}

	barRoom := t.width() - 40
	if barRoom < 10 {
		barRoom = 10
	}
	for _, x := range xs {
		s := summary[x]
		bar := strings.Repeat("█", int(s.SuccessRate/100*float64(barRoom)))
		rate := fmt.Sprintf("%.1f%%", s.SuccessRate)
		line := fmt.Sprintf("%-8d %-8.3f %-10s %-8.3f %s",
			x, s.Mean, rate, s.StdDev, colorBar(s.SuccessRate, bar))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// colorBar picks a color band for the success-rate bar.
func colorBar(rate float64, bar string) string {
	switch {
	case rate >= 80:
		return color.GreenString(bar)
	case rate >= 50:
		return color.YellowString(bar)
	default:
		return color.RedString(bar)
	}
}

// SkippedNames reports names the deck builder could not resolve.
func SkippedNames(w io.Writer, skipped []string) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintln(w, color.YellowString("skipped %d unresolved name(s):", len(skipped)))
	for _, n := range skipped {
		fmt.Fprintf(w, "  %s\n", n)
	}
}
