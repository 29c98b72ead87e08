package interpulse

import (
	"testing"

	"github.com/ianbohannon/WAAM/coord"
	"github.com/ianbohannon/WAAM/gcode"
	"github.com/stretchr/testify/assert"
)

func TestTracker_Observe(t *testing.T) {
	var tr tracker

	start, end := tr.observe(gcode.Parse("G1 X1 Y2 E0.5 F1200\n")[0].Words)
	assert.Equal(t, Position{}, start)
	assert.Equal(t, Position{Point: coord.Point{X: 1, Y: 2, E: 0.5}, Feed: 1200, HasFeed: true}, end)

	// missing axes keep their last value
	start, end = tr.observe(gcode.Parse("G1 X4\n")[0].Words)
	assert.Equal(t, Position{Point: coord.Point{X: 1, Y: 2, E: 0.5}, Feed: 1200, HasFeed: true}, start)
	assert.Equal(t, Position{Point: coord.Point{X: 4, Y: 2, E: 0.5}, Feed: 1200, HasFeed: true}, end)

	// a malformed number is the same as an absent axis
	_, end = tr.observe(gcode.Parse("G1 Xoops Y9\n")[0].Words)
	assert.Equal(t, coord.Point{X: 4, Y: 9, E: 0.5}, end.Point)
}

func TestTracker_AddDistance(t *testing.T) {
	var tr tracker

	assert.Equal(t, 0, tr.addDistance(0.4, 1.0))
	assert.Equal(t, 0, tr.addDistance(0.4, 1.0))
	assert.Equal(t, 1, tr.addDistance(0.4, 1.0))
	assert.InDelta(t, 0.2, tr.acc, 1e-9)

	// a long move can cross several thresholds at once
	assert.Equal(t, 3, tr.addDistance(3.0, 1.0))
	assert.InDelta(t, 0.2, tr.acc, 1e-9)
}
