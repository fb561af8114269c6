package lifetable

import (
	"bytes"
	"strings"
	"testing"
)

func TestSteps(t *testing.T) {

	times := []float64{10, 18}
	probs := []float64{0.9, 0.7}

	pts := Steps(times, probs)

	want := []Point{
		{0, 1},
		{10, 1},
		{10, 0.9},
		{18, 0.9},
		{18, 0.7},
	}
	if len(pts) != len(want) {
		t.Fatalf("got %d points, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestWriteCurve(t *testing.T) {

	var buf bytes.Buffer
	if err := WriteCurve(&buf, []float64{10, 18}, []float64{0.9, 0.7}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[0] != "0.000000,1.000000" {
		t.Errorf("first line %q", lines[0])
	}
	if lines[len(lines)-1] != "18.000000,0.700000" {
		t.Errorf("last line %q", lines[len(lines)-1])
	}
}
