package coxph

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/gdario/statistical-deep-dives/dataset"
)

func indicatorCohort(t *testing.T) *dataset.Cohort {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("futime,event,g0,g1,g2\n")
	for i := 0; i < 30; i++ {
		g := []int{0, 0, 0}
		g[i%3] = 1
		if i%7 == 0 {
			g[(i+1)%3] = 1
		}
		fmt.Fprintf(&sb, "%d,%d,%d,%d,%d\n", 50+3*i, i%2, g[0], g[1], g[2])
	}

	c, err := dataset.LoadReader(strings.NewReader(sb.String()), dataset.Schema{
		Time:    "futime",
		Status:  "event",
		Float64: []string{"g0", "g1", "g2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFactorScores(t *testing.T) {

	c := indicatorCohort(t)

	names, cols, err := FactorScores(c, []string{"g0", "g1", "g2"}, "FAC", 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(names) != 2 || len(cols) != 2 {
		t.Fatalf("got %d factors, want 2", len(names))
	}
	if names[0] != "FAC_00" || names[1] != "FAC_01" {
		t.Errorf("factor names %v", names)
	}

	n := float64(c.NumRow())
	for j, col := range cols {
		if len(col) != c.NumRow() {
			t.Fatalf("factor %d has %d values", j, len(col))
		}
		var mn, ss float64
		for _, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("factor %d has non-finite values", j)
			}
			mn += v
			ss += v * v
		}
		if math.Abs(mn/n) > 1e-8 {
			t.Errorf("factor %d mean %g, want 0", j, mn/n)
		}
		// Scaled to squared norm n.
		if math.Abs(ss-n) > 1e-6 {
			t.Errorf("factor %d squared norm %f, want %f", j, ss, n)
		}
	}

	// Factors can be attached to the cohort for fitting.
	cw, err := c.WithColumns(names, cols)
	if err != nil {
		t.Fatal(err)
	}
	if cw.NumRow() != c.NumRow() {
		t.Errorf("augmented cohort has %d rows", cw.NumRow())
	}
}

func TestFactorScoresErrors(t *testing.T) {

	c := indicatorCohort(t)

	if _, _, err := FactorScores(c, nil, "F", 1, 2); err == nil {
		t.Error("expected error for no columns")
	}
	if _, _, err := FactorScores(c, []string{"g0"}, "F", 2, 2); err == nil {
		t.Error("expected error for nfac > columns")
	}
	if _, _, err := FactorScores(c, []string{"futime"}, "F", 1, 2); err == nil {
		t.Error("expected error for a non-indicator column")
	}
}
