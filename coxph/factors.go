package coxph

import (
	"fmt"
	"math"

	"github.com/brookluers/dimred"
	"github.com/pkg/errors"

	"github.com/gdario/statistical-deep-dives/dataset"
)

// FactorScores reduces a block of 0/1 indicator columns to nfac factor
// score columns via a randomized SVD, for use as covariates in place of
// the raw indicators.  npow is the number of power iterations applied
// during the approximate factorization.
//
// The returned columns are centered, scaled to unit norm, and multiplied
// by sqrt(n) so their scale matches standardized covariates.  Column j is
// named pre_j, e.g. "FAC_00".
func FactorScores(c *dataset.Cohort, names []string, pre string, nfac, npow int) ([]string, [][]float64, error) {

	if len(names) == 0 {
		return nil, nil, errors.New("no indicator columns given")
	}
	if nfac <= 0 || nfac > len(names) {
		return nil, nil, errors.Errorf("cannot extract %d factors from %d columns", nfac, len(names))
	}

	n := c.NumRow()

	// The indicator block as a sparse matrix: mat[row[i], col[i]] = dat[i]
	var row, col []int
	var dat []float64
	for j, na := range names {
		v, err := c.Column(na)
		if err != nil {
			return nil, nil, err
		}
		for i, x := range v {
			if x == 0 {
				continue
			}
			if x != 1 {
				return nil, nil, errors.Errorf("column %s is not a 0/1 indicator", na)
			}
			row = append(row, i)
			col = append(col, j)
			dat = append(dat, 1)
		}
	}

	spm := dimred.NewSPM(row, col, dat, n, len(names))
	sv := new(dimred.RSVD)
	sv.Factorize(spm, nfac, npow)
	umat := sv.UTo(nil)

	// Center and scale the factor columns.
	sf := math.Sqrt(float64(n))
	fnames := make([]string, nfac)
	fcols := make([][]float64, nfac)
	for j := 0; j < nfac; j++ {

		z := make([]float64, n)
		mn := 0.0
		for i := 0; i < n; i++ {
			z[i] = umat.At(i, j)
			mn += z[i]
		}
		mn /= float64(n)

		sc := 0.0
		for i := range z {
			z[i] -= mn
			sc += z[i] * z[i]
		}
		sc = math.Sqrt(sc)
		if sc == 0 {
			return nil, nil, errors.Errorf("factor %d is constant", j)
		}

		for i := range z {
			z[i] *= sf / sc
		}

		fnames[j] = fmt.Sprintf("%s_%02d", pre, j)
		fcols[j] = z
	}

	return fnames, fcols, nil
}
