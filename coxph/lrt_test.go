package coxph

import (
	"math"
	"testing"
)

func TestNullPartialLogLike(t *testing.T) {

	// No ties: risk sets of size 3, 2, 1 at the three event times.
	ll := nullPartialLogLike([]float64{1, 2, 3}, []float64{1, 1, 1}, nil)
	want := -(math.Log(3) + math.Log(2) + math.Log(1))
	if math.Abs(ll-want) > 1e-12 {
		t.Errorf("got %f, want %f", ll, want)
	}

	// Breslow ties: both events at t=1 see the full risk set of 3.
	ll = nullPartialLogLike([]float64{1, 1, 2}, []float64{1, 1, 0}, nil)
	want = -2 * math.Log(3)
	if math.Abs(ll-want) > 1e-12 {
		t.Errorf("tied case: got %f, want %f", ll, want)
	}

	// Censored subjects contribute only to risk sets.
	ll = nullPartialLogLike([]float64{1, 2, 3}, []float64{0, 1, 0}, nil)
	want = -math.Log(2)
	if math.Abs(ll-want) > 1e-12 {
		t.Errorf("censored case: got %f, want %f", ll, want)
	}
}

func TestWeightedPartialLogLike(t *testing.T) {

	time := []float64{1, 2, 3}
	status := []float64{1, 1, 1}

	// Unit weights match the unweighted value.
	ones := []float64{1, 1, 1}
	if got, want := nullPartialLogLike(time, status, ones), nullPartialLogLike(time, status, nil); math.Abs(got-want) > 1e-12 {
		t.Errorf("unit weights: got %f, want %f", got, want)
	}

	// Hand value: the subject with weight 2 doubles both its event term
	// and its risk-set contribution.
	wgt := []float64{2, 1, 1}
	ll := nullPartialLogLike(time, status, wgt)
	want := -2*math.Log(4) - math.Log(2) - math.Log(1)
	if math.Abs(ll-want) > 1e-12 {
		t.Errorf("got %f, want %f", ll, want)
	}

	// Weighted scores: risk-set sums use w*exp(s).
	score := []float64{0.3, -0.4, 0.2}
	e := []float64{2 * math.Exp(0.3), math.Exp(-0.4), math.Exp(0.2)}
	want = 2*(0.3-math.Log(e[0]+e[1]+e[2])) +
		(-0.4 - math.Log(e[1]+e[2])) +
		(0.2 - math.Log(e[2]))
	if got := breslowLogLike(time, status, score, wgt); math.Abs(got-want) > 1e-12 {
		t.Errorf("weighted scores: got %f, want %f", got, want)
	}
}

func TestBreslowLogLike(t *testing.T) {

	time := []float64{5, 3, 8, 1}
	status := []float64{1, 0, 1, 1}
	score := []float64{0.5, -0.2, 0.1, 0.9}

	// Zero scores reduce to the null value.
	z := make([]float64, len(time))
	if got, want := breslowLogLike(time, status, z, nil), nullPartialLogLike(time, status, nil); math.Abs(got-want) > 1e-12 {
		t.Errorf("zero scores: got %f, want %f", got, want)
	}

	// The partial likelihood is invariant to shifting the scores.
	ll := breslowLogLike(time, status, score, nil)
	shifted := make([]float64, len(score))
	for i, s := range score {
		shifted[i] = s + 7.3
	}
	if got := breslowLogLike(time, status, shifted, nil); math.Abs(got-ll) > 1e-9 {
		t.Errorf("shifted scores: got %f, want %f", got, ll)
	}

	// Hand value: events at t=1 (risk set all 4), t=5 (subjects with
	// t>=5), t=8 (last subject).
	e := []float64{math.Exp(0.5), math.Exp(-0.2), math.Exp(0.1), math.Exp(0.9)}
	want := 0.9 - math.Log(e[0]+e[1]+e[2]+e[3])
	want += 0.5 - math.Log(e[0]+e[2])
	want += 0.1 - math.Log(e[2])
	if math.Abs(ll-want) > 1e-12 {
		t.Errorf("got %f, want %f", ll, want)
	}
}

func TestLRTest(t *testing.T) {

	// No improvement over the null model.
	r := lrTest(-10, -10, 2)
	if r.Stat != 0 {
		t.Errorf("stat %f, want 0", r.Stat)
	}
	if math.Abs(r.Pvalue-1) > 1e-12 {
		t.Errorf("p %f, want 1", r.Pvalue)
	}

	// A large improvement is significant.
	r = lrTest(-100, -80, 1)
	if r.Stat != 40 {
		t.Errorf("stat %f, want 40", r.Stat)
	}
	if r.Pvalue > 1e-6 {
		t.Errorf("p %g, want near 0", r.Pvalue)
	}
	if r.Df != 1 {
		t.Errorf("df %d, want 1", r.Df)
	}
}

func TestMaxEventTime(t *testing.T) {

	// The horizon is the largest event time when events exist.
	if got := maxEventTime([]float64{5, 9, 12}, []float64{1, 1, 0}); got != 9 {
		t.Errorf("got %f, want 9", got)
	}

	// An all-censored cohort falls back to the largest follow-up time.
	if got := maxEventTime([]float64{5, 9, 12}, []float64{0, 0, 0}); got != 12 {
		t.Errorf("all censored: got %f, want 12", got)
	}
}
