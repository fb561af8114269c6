package coxph

import (
	"sort"

	"github.com/kshedden/dstream/dstream"
	"github.com/kshedden/duration"
	"github.com/pkg/errors"
)

// PathPoint is one fit along a ridge penalty path.
type PathPoint struct {
	L2          float64
	Concordance float64
	Coef        []float64
	Summary     string
}

// RidgePath fits the model once per L2 penalty weight, one goroutine per
// weight, and reports the concordance achieved at each penalty.  Fits
// that fail to converge are skipped; an error is returned only if every
// fit fails.
func (m *Model) RidgePath(l2w []float64) ([]PathPoint, error) {

	if len(l2w) == 0 {
		return nil, errors.New("empty penalty grid")
	}

	rc := make(chan *PathPoint, len(l2w))

	// Each fit gets its own shallow copy, taken before the goroutines
	// start so the shared cursor is never touched concurrently.
	m.da.Reset()

	for _, w := range l2w {

		dx := dstream.Shallow(m.da)

		go func(w float64, dx dstream.Dstream) {

			l2 := make([]float64, len(m.xnames))
			for k := range l2 {
				l2[k] = w
			}

			dx.Reset()

			ph := duration.NewPHReg(dx, m.timevar, m.statusvar).OptSettings(m.optSettings()).L2Weight(l2)
			if m.weightvar != "" {
				ph = ph.Weight(m.weightvar)
			}
			ph = ph.Norm().Done()

			rslt, err := ph.Fit()
			if err != nil {
				rc <- nil // need to put something down the channel
				return
			}

			score := rslt.FittedValues(nil)

			dx.Reset()
			tm := dstream.GetCol(dx, m.timevar).([]float64)
			dx.Reset()
			st := dstream.GetCol(dx, m.statusvar).([]float64)
			cc := duration.NewConcordance(tm, st, score).Done()

			rc <- &PathPoint{
				L2:          w,
				Concordance: cc.Concordance(maxEventTime(tm, st)),
				Coef:        rslt.Params(),
				Summary:     rslt.Summary(),
			}
		}(w, dx)
	}

	var path []PathPoint
	for k := 0; k < len(l2w); k++ {
		if p := <-rc; p != nil {
			path = append(path, *p)
		}
	}
	if len(path) == 0 {
		return nil, errors.New("no penalty weight produced a converged fit")
	}

	sort.Slice(path, func(a, b int) bool { return path[a].L2 < path[b].L2 })

	return path, nil
}
