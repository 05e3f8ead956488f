package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/stringart"
)

// printCoordinates lists every path as its color followed by the pin
// coordinates it visits, in order.
func printCoordinates(w io.Writer, res *stringart.Result) {
	for i, path := range res.Paths {
		fmt.Fprintf(w, "# path %d %s %d lines\n", i, path.Color.Hex(), path.Lines())
		for _, pin := range path.Pins {
			p := res.Pins[pin]
			fmt.Fprintf(w, "%d %.3f %.3f\n", pin, p.X, p.Y)
		}
	}
}

// printSummary writes a short colored report of the run. Counts are
// grouped by thousands.
func printSummary(w io.Writer, runID uuid.UUID, res *stringart.Result) {
	p := message.NewPrinter(language.English)
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	header.Fprintf(w, "stringart %s\n", res.Mode)
	dim.Fprintf(w, "  run %s\n", runID)
	p.Fprintf(w, "  %d lines in %d iterations over %d pins\n", res.Lines(), res.Iterations, len(res.Pins))

	stop := color.New(color.FgGreen)
	switch {
	case res.Stop == stringart.StopCanceled:
		stop = color.New(color.FgYellow)
	case res.Stop.Early():
		stop = color.New(color.FgBlue)
	}
	stop.Fprintf(w, "  stopped: %s\n", res.Stop)

	for _, path := range res.Paths {
		swatch := color.RGB(int(path.Color.R), int(path.Color.G), int(path.Color.B))
		swatch.Fprint(w, "  ■ ")
		p.Fprintf(w, "%s %d lines\n", path.Color.Hex(), path.Lines())
	}
}
