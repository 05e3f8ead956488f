// Package stringart synthesizes string art: it places pins evenly around a
// circle and greedily chooses an ordered sequence of pin-to-pin lines whose
// semi-transparent strokes best approximate a reference image.
//
// # Quick Start
//
//	import "github.com/gogpu/stringart"
//
//	pins := stringart.Pins(stringart.InscribedCircle(720), 288)
//	opt, err := stringart.NewOptimizer(ref, pins, stringart.Palette{stringart.Black},
//	    stringart.WithMaxLines(3000))
//	if err != nil {
//	    return err
//	}
//	res, err := opt.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	return stringart.SaveSVG("out.svg", res, stringart.DefaultSVGOptions())
//
// # Modes
//
// Three scoring policies are available, selected with [WithMode]:
//   - [ModeDarkness]: a single path removes as much remaining darkness
//     as possible per line. Lines are not reused.
//   - [ModeColor]: one path per palette color over a shared canvas;
//     each line must reduce squared RGB error. Lines may be reused.
//   - [ModeAccuracy]: a single path over a bi-level image, preferring
//     lines through ink and stopping below an ink-ratio floor.
//
// # Architecture
//
// The package is organized as:
//   - Geometry: [Circle], [Pins], [Point]
//   - Rasterization: [RasterizeLine], [LinePoints], [PairIndex], [LineTable]
//   - Raster state: [GrayMap], [Canvas]
//   - Search: [Optimizer], [Score], [Result]
//   - Output: [WriteSVG], [SaveSVG]
//
// # Coordinate System
//
// Pin space has its origin at the bottom-left of the working image with y
// increasing upward, so pin k sits at angle 2πk/n counter-clockwise from
// the positive x axis. Rasters map pin-space pixel (x, y) to image row
// height-1-y, and the SVG writer emits height-y.
//
// # Concurrency
//
// Candidate scoring fans out over a worker pool and only reads shared state;
// the single accepted move per iteration is applied after all workers have
// finished. Results are identical for any worker count.
package stringart
