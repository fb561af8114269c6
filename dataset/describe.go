package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary holds basic statistics for one numeric column.
type Summary struct {
	Name string
	N    int
	Mean float64
	SD   float64
	Min  float64
	Max  float64
}

// Describe returns basic statistics for every numeric column, in column
// order.
func (c *Cohort) Describe() []Summary {

	var sm []Summary
	for _, na := range c.names {
		v, ok := c.fcols[na]
		if !ok {
			continue
		}
		sm = append(sm, Summary{
			Name: na,
			N:    len(v),
			Mean: stat.Mean(v, nil),
			SD:   stat.StdDev(v, nil),
			Min:  floats.Min(v),
			Max:  floats.Max(v),
		})
	}
	return sm
}

// CorrelationMatrix returns the Pearson correlation matrix of the named
// numeric columns.  With no names it uses every numeric covariate.
func (c *Cohort) CorrelationMatrix(names ...string) (*mat.SymDense, []string, error) {

	if len(names) == 0 {
		names = c.Covariates()
	}
	if len(names) < 2 {
		return nil, nil, errors.New("need at least two columns for a correlation matrix")
	}

	x := mat.NewDense(c.nrow, len(names), nil)
	for j, na := range names {
		v, err := c.Column(na)
		if err != nil {
			return nil, nil, err
		}
		x.SetCol(j, v)
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, x, nil)

	return &corr, names, nil
}
