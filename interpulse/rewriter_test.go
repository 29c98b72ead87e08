package interpulse

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rewrite(t *testing.T, input string, cfg Config) string {
	t.Helper()
	out, err := Process([]byte(input), cfg)
	assert.NoError(t, err)
	return string(out)
}

func TestRewriter_ThermalElision(t *testing.T) {
	in := "M104 S210\nG28 ; home\nm109 S210\nG1 X1 Y1 F1200\n"

	out := rewrite(t, in, Config{})
	assert.Equal(t, "G28 ; home\nG1 X1 Y1 F1200\n", out)

	out = rewrite(t, in, Config{KeepTemps: true})
	assert.Equal(t, in, out)
}

func TestRewriter_Passthrough(t *testing.T) {
	// no extruding moves at all: everything is copied verbatim,
	// original terminators included
	in := "; sliced for waam\r\nG28\nG1 X10 Y0 F1200\nG1 X10 Y10 E0\nM84"

	out := rewrite(t, in, Config{})
	assert.Equal(t, in, out)

	// and a second pass changes nothing
	assert.Equal(t, out, rewrite(t, out, Config{}))
}

func TestRewriter_SingleMoveManyPulses(t *testing.T) {
	var triggers []Trigger
	out := rewrite(t, "G1 X10 Y0 E1\n", Config{
		OnTrigger: func(tr Trigger) { triggers = append(triggers, tr) },
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// 10 pulses of 4 lines each, plus the final move
	assert.Len(t, lines, 41)
	assert.Len(t, triggers, 10)

	assert.Equal(t, "G1 X1.00000 Y0.00000 E0.10000", lines[0])
	assert.Equal(t, "M106 S255 ; ON", lines[1])
	assert.Equal(t, "G4 P200 ; Wait", lines[2])
	assert.Equal(t, "M107 ; OFF", lines[3])
	assert.Equal(t, "G1 X2.00000 Y0.00000 E0.20000", lines[4])
	assert.Equal(t, "G1 X10.00000 Y0.00000 E1.00000", lines[40])

	assert.Equal(t, 1, triggers[0].Line)
	assert.InDelta(t, 1.0, triggers[0].X, 1e-9)
	assert.InDelta(t, 10.0, triggers[9].X, 1e-9)
}

func TestRewriter_SinglePulseCollapsesOnEndpoint(t *testing.T) {
	// one threshold crossed: the lone interpolated point is the
	// endpoint itself, and the final move duplicates it
	out := rewrite(t, "G0 X10 Y0 E1\n", Config{TriggerDistance: 10})

	assert.Equal(t, strings.Join([]string{
		"G0 X10.00000 Y0.00000 E1.00000",
		"M106 S255 ; ON",
		"G4 P200 ; Wait",
		"M107 ; OFF",
		"G0 X10.00000 Y0.00000 E1.00000",
		"",
	}, "\n"), out)
}

func TestRewriter_AccumulatorCarriesAcrossMoves(t *testing.T) {
	in := "G1 X0.6 Y0 E0.1\nG1 X1.2 Y0 E0.2\n"

	out := rewrite(t, in, Config{})
	assert.Equal(t, strings.Join([]string{
		"G1 X0.60000 Y0.00000 E0.10000",
		"G1 X1.20000 Y0.00000 E0.20000",
		"M106 S255 ; ON",
		"G4 P200 ; Wait",
		"M107 ; OFF",
		"G1 X1.20000 Y0.00000 E0.20000",
		"",
	}, "\n"), out)
}

func TestRewriter_RenewalAdditivity(t *testing.T) {
	// the same 10mm of extruding travel, chopped differently,
	// always yields floor(10/1.5)=6 pulses
	chop := func(steps int) string {
		var b strings.Builder
		for i := 1; i <= steps; i++ {
			x := 10 * float64(i) / float64(steps)
			e := float64(i) / float64(steps)
			fmt.Fprintf(&b, "G1 X%s Y0 E%s\n",
				strconv.FormatFloat(x, 'f', -1, 64),
				strconv.FormatFloat(e, 'f', -1, 64))
		}
		return b.String()
	}

	for _, steps := range []int{1, 2, 4, 5, 10} {
		var n int
		rewrite(t, chop(steps), Config{
			TriggerDistance: 1.5,
			OnTrigger:       func(Trigger) { n++ },
		})
		assert.Equal(t, 6, n, "steps=%d", steps)
	}
}

func TestRewriter_NonExtrudingNeverAccumulates(t *testing.T) {
	var n int
	// travel moves between short extrusions: only the extruding
	// displacement counts
	in := "G1 X0.6 Y0 E0.1\nG0 X100 Y100 E0.1\nG0 X0.6 Y0 E0.1\nG1 X1.2 Y0 E0.2\n"
	out := rewrite(t, in, Config{OnTrigger: func(Trigger) { n++ }})

	assert.Equal(t, 1, n)
	assert.Contains(t, out, "G0 X100 Y100 E0.1\n")
}

func TestRewriter_DwellTime(t *testing.T) {
	out := rewrite(t, "G1 X2 Y0 E0.5\n", Config{TriggerDistance: 2, DwellTime: 350})
	assert.Contains(t, out, "G4 P350 ; Wait\n")
}

func TestRewriter_PassthroughUpdatesPosition(t *testing.T) {
	var n int
	// G92 resets E; the following move extrudes from 0 again and
	// its 5mm of travel crosses the 4mm threshold once
	in := "G1 X3 Y4 E5\nG92 E0\nG1 X6 Y8 E0.5\n"
	rewrite(t, in, Config{TriggerDistance: 4, OnTrigger: func(tr Trigger) { n++ }})

	assert.Equal(t, 2, n)
}
