// Package gcode builds plain-text CNC programs in a minimal dialect:
// G0 rapids, G1 linear cuts, G2/G3 circular interpolation with
// incremental I/J center offsets, and ; line comments. All coordinates
// and feeds are written with exactly three decimal places.
package gcode

import (
	"fmt"
	"strings"
)

// Program accumulates G-code lines. The zero value is ready to use.
// Lines are append-only; a Program is never edited after the fact.
type Program struct {
	b     strings.Builder
	moves int
}

// Comment writes a ; annotation line. Consumers must never parse these
// as motion.
func (p *Program) Comment(format string, args ...interface{}) {
	fmt.Fprintf(&p.b, "; "+format+"\n", args...)
}

// Rapid writes a G0 positioning move to (x, y, z).
func (p *Program) Rapid(x, y, z float64) {
	fmt.Fprintf(&p.b, "G0 X%.3f Y%.3f Z%.3f\n", x, y, z)
	p.moves++
}

// RapidXY writes a G0 positioning move that holds the current Z.
func (p *Program) RapidXY(x, y float64) {
	fmt.Fprintf(&p.b, "G0 X%.3f Y%.3f\n", x, y)
	p.moves++
}

// Plunge writes a G1 move straight down (or up) to z at the given feed.
func (p *Program) Plunge(z, feed float64) {
	fmt.Fprintf(&p.b, "G1 Z%.3f F%.3f\n", z, feed)
	p.moves++
}

// Linear writes a G1 cutting move to (x, y) at the given feed.
func (p *Program) Linear(x, y, feed float64) {
	fmt.Fprintf(&p.b, "G1 X%.3f Y%.3f F%.3f\n", x, y, feed)
	p.moves++
}

// Arc writes a full-circle G2 (clockwise) or G3 (counter-clockwise)
// interpolation ending at (x, y) with incremental center offsets i, j.
func (p *Program) Arc(clockwise bool, x, y, i, j, feed float64) {
	code := "G3"
	if clockwise {
		code = "G2"
	}
	fmt.Fprintf(&p.b, "%s X%.3f Y%.3f I%.3f J%.3f F%.3f\n", code, x, y, i, j, feed)
	p.moves++
}

// Preamble writes the program header: metric units, absolute
// coordinates, the G54 work offset and spindle start.
func (p *Program) Preamble(spindleRPM float64) {
	p.b.WriteString("G21\n") // millimeters
	p.b.WriteString("G90\n") // absolute coordinates
	p.b.WriteString("G54\n") // work coordinate system
	fmt.Fprintf(&p.b, "M3 S%.3f\n", spindleRPM)
}

// Postamble stops the spindle and ends the program.
func (p *Program) Postamble() {
	p.b.WriteString("M5\n")
	p.b.WriteString("M2\n")
}

// Moves returns the number of motion lines written so far.
func (p *Program) Moves() int {
	return p.moves
}

// String returns the accumulated program text.
func (p *Program) String() string {
	return p.b.String()
}
