package interpulse

import (
	"math"

	"github.com/ianbohannon/WAAM/coord"
	"github.com/ianbohannon/WAAM/gcode"
)

// Position is the tool state carried across lines: planar and
// extrusion coordinates plus the last seen feed rate, if any.
type Position struct {
	coord.Point
	Feed    float64
	HasFeed bool
}

// tracker is the state threaded through one rewrite: the last known
// position and the planar distance extruded since the last pulse.
// Axes the stream never mentions keep their previous value.
type tracker struct {
	pos Position
	acc float64
}

// observe merges the line's axis words into the tracked position and
// returns the positions held before and after the line.
func (t *tracker) observe(b gcode.Block) (start, end Position) {
	start = t.pos
	if ok, v := b.Arg('X'); ok {
		t.pos.X = v
	}
	if ok, v := b.Arg('Y'); ok {
		t.pos.Y = v
	}
	if ok, v := b.Arg('E'); ok {
		t.pos.E = v
	}
	if ok, v := b.Arg('F'); ok {
		t.pos.Feed = v
		t.pos.HasFeed = true
	}
	return start, t.pos
}

// addDistance credits planar travel against the trigger threshold and
// returns how many whole thresholds were crossed. The remainder stays
// in the accumulator for later moves.
func (t *tracker) addDistance(d, trigger float64) int {
	t.acc += d
	if t.acc < trigger {
		return 0
	}

	n := int(math.Floor(t.acc / trigger))
	t.acc -= float64(n) * trigger
	return n
}
