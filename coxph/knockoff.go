package coxph

import (
	"math/rand"

	"github.com/kshedden/dstream/dstream"
	"github.com/kshedden/duration"
	"github.com/kshedden/statmodel/statmodel"
	"github.com/pkg/errors"
)

// ScreenRow is the knockoff screening outcome for one covariate.
type ScreenRow struct {
	Name string
	Coef float64
	Stat float64
	FDR  float64
}

// Knockoff screens the model covariates with the fixed-X knockoff filter:
// each covariate gets a synthetic knockoff copy, the model is refit on the
// augmented data, and variables whose coefficients beat their knockoffs
// are ranked with an estimated false discovery rate.
//
// The knockoff construction already normalizes the design, so the refit
// does not rescale the covariates.
func (m *Model) Knockoff(seed int64, l2 float64) ([]ScreenRow, error) {

	rand.Seed(seed)

	m.da.Reset()
	ko, err := statmodel.NewKnockoff(m.da, m.xnames)
	if err != nil {
		return nil, errors.Wrap(err, "constructing knockoff design")
	}
	ko.Reset()
	dk := dstream.MemCopy(ko, false)

	ph := duration.NewPHReg(dk, m.timevar, m.statusvar).OptSettings(m.optSettings())
	if m.weightvar != "" {
		ph = ph.Weight(m.weightvar)
	}
	if l2 > 0 {
		nx := len(dk.Names()) - 2
		if m.weightvar != "" {
			nx--
		}
		l2w := make([]float64, nx)
		for k := range l2w {
			l2w[k] = l2
		}
		ph = ph.L2Weight(l2w)
	}
	ph = ph.Done()

	rslt, err := ph.Fit()
	if err != nil {
		return nil, errors.Wrap(err, "fitting on knockoff-augmented data")
	}

	kr := statmodel.NewKnockoffResult(rslt, false)

	names := kr.Names()
	params := kr.Params()
	stat := kr.Stat()
	fdr := kr.FDR()

	rows := make([]ScreenRow, len(names))
	for i := range names {
		rows[i] = ScreenRow{
			Name: names[i],
			Coef: params[i],
			Stat: stat[i],
			FDR:  fdr[i],
		}
	}

	return rows, nil
}
