package interpulse

import (
	"fmt"

	"github.com/ianbohannon/WAAM/coord"
	"github.com/ianbohannon/WAAM/gcode"
)

const (
	// DefaultTriggerDistance is the planar extruding travel, in mm,
	// after which a fan pulse is due.
	DefaultTriggerDistance = 1.0
	// DefaultDwellTime is how long the fan is held on, in ms.
	DefaultDwellTime = 200
)

const (
	fanOn  = "M106 S255 ; ON\n"
	fanOff = "M107 ; OFF\n"
)

// Trigger describes one emitted fan pulse.
type Trigger struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	E    float64 `json:"e"`
	Feed float64 `json:"feed,omitempty"`
	Line int     `json:"line"`
}

type Config struct {
	// TriggerDistance overrides DefaultTriggerDistance when > 0.
	TriggerDistance float64
	// DwellTime overrides DefaultDwellTime when > 0.
	DwellTime int
	// KeepTemps retains M104/M109 lines instead of stripping them.
	KeepTemps bool
	// OnTrigger, if set, is called for every pulse as it is placed.
	OnTrigger func(Trigger)

	Reader gcode.LineReader
}

// Rewriter rewrites a G-code stream line by line, dropping hotend
// temperature commands and splitting extruding moves so that a fan
// pulse lands every TriggerDistance of planar travel. Reads return
// the rewritten stream in input order; expanded moves come out of an
// internal buffer before the next input line is consumed.
type Rewriter struct {
	trigger   float64
	dwell     int
	keepTemps bool
	onTrigger func(Trigger)

	track tracker

	buf  []gcode.Line
	bufN int

	lineN int

	lr gcode.LineReader
}

func New(cfg Config) *Rewriter {
	rw := &Rewriter{
		trigger:   cfg.TriggerDistance,
		dwell:     cfg.DwellTime,
		keepTemps: cfg.KeepTemps,
		onTrigger: cfg.OnTrigger,
		lr:        cfg.Reader,
	}
	if rw.trigger <= 0 {
		rw.trigger = DefaultTriggerDistance
	}
	if rw.dwell <= 0 {
		rw.dwell = DefaultDwellTime
	}

	return rw
}

// isMove reports whether the line is a linear move carrying an
// extrusion word. Matching is prefix-based on the command token, so
// motion lines without E, and everything that is not G0/G1, pass
// through untouched.
func isMove(ln gcode.Line) bool {
	if !ln.HasPrefix("G0") && !ln.HasPrefix("G1") {
		return false
	}
	ok, _ := ln.Words.Arg('E')
	return ok
}

func (rw *Rewriter) Read() (gcode.Line, error) {
	if len(rw.buf)-rw.bufN > 0 {
		rw.bufN++
		return rw.buf[rw.bufN-1], nil
	}

	for {
		ln, err := rw.lr.Read()
		if err != nil {
			return gcode.Line{}, err
		}
		rw.lineN++

		if !rw.keepTemps && (ln.HasPrefix("M104") || ln.HasPrefix("M109")) {
			continue
		}

		if !isMove(ln) {
			// still merge whatever axes the line carries, so
			// later moves measure from the right spot
			rw.track.observe(ln.Words)
			return ln, nil
		}

		start, end := rw.track.observe(ln.Words)
		if end.E <= start.E {
			return ln, nil
		}

		n := rw.track.addDistance(start.DistanceXY(end.Point), rw.trigger)
		return rw.expand(ln, start, end, n), nil
	}
}

// expand rewrites one extruding move: n interpolated sub-moves, each
// followed by the fan pulse, then the move to the true destination.
// The final move is emitted even when no threshold was crossed.
func (rw *Rewriter) expand(ln gcode.Line, start, end Position, n int) gcode.Line {
	code, _ := ln.Code()

	rw.buf = rw.buf[:0]
	if n > 0 {
		for _, p := range start.Point.Split(end.Point, n) {
			rw.buf = append(rw.buf,
				moveLine(code, p),
				gcode.ParseLine(fanOn),
				gcode.ParseLine(fmt.Sprintf("G4 P%d ; Wait\n", rw.dwell)),
				gcode.ParseLine(fanOff),
			)
			if rw.onTrigger != nil {
				rw.onTrigger(Trigger{X: p.X, Y: p.Y, E: p.E, Feed: end.Feed, Line: rw.lineN})
			}
		}
	}
	rw.buf = append(rw.buf, moveLine(code, end.Point))

	rw.bufN = 1
	return rw.buf[0]
}

func moveLine(code gcode.Word, p coord.Point) gcode.Line {
	return gcode.ParseLine(fmt.Sprintf("%s X%.5f Y%.5f E%.5f\n", code, p.X, p.Y, p.E))
}
