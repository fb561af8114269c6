package coxph

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// LRTest holds the partial-likelihood ratio test of a fitted model against
// the null (no covariates) model.
type LRTest struct {
	Stat   float64
	Df     int
	Pvalue float64
}

func lrTest(ll0, ll float64, df int) LRTest {
	stat := 2 * (ll - ll0)
	ch := distuv.ChiSquared{K: float64(df)}
	return LRTest{
		Stat:   stat,
		Df:     df,
		Pvalue: ch.Survival(stat),
	}
}

// breslowLogLike evaluates the Cox partial log-likelihood at the given
// per-subject linear predictors, using the Breslow convention for tied
// event times.  A nil weight means unit case weights; otherwise each
// event term and each risk-set contribution is scaled by the subject's
// weight, matching the weighted likelihood PHReg maximizes.  The value is
// invariant to a constant shift of the scores, so centered predictors
// from a fit can be passed directly.
func breslowLogLike(time, status, score, weight []float64) float64 {

	wt := func(i int) float64 {
		if weight == nil {
			return 1
		}
		return weight[i]
	}

	ix := make([]int, len(time))
	for i := range ix {
		ix[i] = i
	}
	// Process subjects from longest to shortest follow-up so the risk
	// set is a running sum.
	sort.Slice(ix, func(a, b int) bool { return time[ix[a]] > time[ix[b]] })

	ll := 0.0
	expsum := 0.0
	for k := 0; k < len(ix); {

		// All subjects tied at this time enter the risk set before any
		// of their events contribute.
		j := k
		for j < len(ix) && time[ix[j]] == time[ix[k]] {
			expsum += wt(ix[j]) * math.Exp(score[ix[j]])
			j++
		}

		for ; k < j; k++ {
			if status[ix[k]] == 1 {
				ll += wt(ix[k]) * (score[ix[k]] - math.Log(expsum))
			}
		}
	}

	return ll
}

// nullPartialLogLike evaluates the partial log-likelihood of the null
// model, in which every subject has linear predictor zero.
func nullPartialLogLike(time, status, weight []float64) float64 {
	return breslowLogLike(time, status, make([]float64, len(time)), weight)
}
