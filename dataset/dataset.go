package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/kshedden/dstream/dstream"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Cohort is one survival dataset held in memory: one row per subject, a
// follow-up time column, an event status column (1 = event observed, 0 =
// censored), and any number of numeric or categorical covariate columns.
//
// A Cohort is read-only; operations that derive new columns return a new
// value.
type Cohort struct {
	names     []string
	fcols     map[string][]float64
	scols     map[string][]string
	timevar   string
	statusvar string
	nrow      int
}

// Names returns the column names in order.
func (c *Cohort) Names() []string {
	na := make([]string, len(c.names))
	copy(na, c.names)
	return na
}

// NumRow returns the number of subjects.
func (c *Cohort) NumRow() int {
	return c.nrow
}

// TimeVar returns the name of the follow-up time column.
func (c *Cohort) TimeVar() string {
	return c.timevar
}

// StatusVar returns the name of the event status column.
func (c *Cohort) StatusVar() string {
	return c.statusvar
}

// Time returns the follow-up times.
func (c *Cohort) Time() []float64 {
	return c.fcols[c.timevar]
}

// Status returns the event indicators.
func (c *Cohort) Status() []float64 {
	return c.fcols[c.statusvar]
}

// Column returns a numeric column by name.
func (c *Cohort) Column(name string) ([]float64, error) {
	v, ok := c.fcols[name]
	if !ok {
		if _, sok := c.scols[name]; sok {
			return nil, errors.Errorf("column %s is categorical, not numeric", name)
		}
		return nil, errors.Errorf("no column named %s", name)
	}
	return v, nil
}

// StringColumn returns a categorical column by name.
func (c *Cohort) StringColumn(name string) ([]string, error) {
	v, ok := c.scols[name]
	if !ok {
		return nil, errors.Errorf("no categorical column named %s", name)
	}
	return v, nil
}

// Covariates returns the names of the numeric covariate columns, excluding
// the time and status columns.
func (c *Cohort) Covariates() []string {
	var na []string
	for _, v := range c.names {
		if v == c.timevar || v == c.statusvar {
			continue
		}
		if _, ok := c.fcols[v]; ok {
			na = append(na, v)
		}
	}
	return na
}

// ReverseStatus returns a cohort in which the event indicator is flipped,
// so that fitting a survival function estimates the censoring distribution.
func (c *Cohort) ReverseStatus() *Cohort {
	cn := c.clone()
	st := c.fcols[c.statusvar]
	rv := make([]float64, len(st))
	for i := range st {
		rv[i] = 1 - st[i]
	}
	cn.fcols[c.statusvar] = rv
	return cn
}

// Center returns a cohort whose numeric covariate columns are mean
// centered.  The time and status columns and any column named in skip are
// left alone.
func (c *Cohort) Center(skip ...string) *Cohort {
	nc := map[string]bool{c.timevar: true, c.statusvar: true}
	for _, na := range skip {
		nc[na] = true
	}

	cn := c.clone()
	for na, v := range c.fcols {
		if nc[na] {
			continue
		}
		mn := floats.Sum(v) / float64(len(v))
		z := make([]float64, len(v))
		for i := range v {
			z[i] = v[i] - mn
		}
		cn.fcols[na] = z
	}
	return cn
}

// WithColumns returns a cohort augmented with the given numeric columns.
// Each column must have one value per subject.
func (c *Cohort) WithColumns(names []string, cols [][]float64) (*Cohort, error) {
	if len(names) != len(cols) {
		return nil, errors.Errorf("got %d names for %d columns", len(names), len(cols))
	}
	cn := c.clone()
	for j, na := range names {
		if _, ok := c.fcols[na]; ok {
			return nil, errors.Errorf("column %s already present", na)
		}
		if _, ok := c.scols[na]; ok {
			return nil, errors.Errorf("column %s already present", na)
		}
		if len(cols[j]) != c.nrow {
			return nil, errors.Errorf("column %s has %d values for %d subjects", na, len(cols[j]), c.nrow)
		}
		v := make([]float64, c.nrow)
		copy(v, cols[j])
		cn.fcols[na] = v
		cn.names = append(cn.names, na)
	}
	return cn, nil
}

// Dstream materializes the cohort as a dstream for the model-fitting
// packages.  Every call returns an independent in-memory copy.
func (c *Cohort) Dstream() dstream.Dstream {

	// Round-trip through CSV so categorical values with commas or
	// quotes survive intact.
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Write(c.names)

	rec := make([]string, len(c.names))
	for i := 0; i < c.nrow; i++ {
		for j, na := range c.names {
			if v, ok := c.fcols[na]; ok {
				rec[j] = strconv.FormatFloat(v[i], 'g', -1, 64)
			} else {
				rec[j] = c.scols[na][i]
			}
		}
		cw.Write(rec)
	}
	cw.Flush()

	var fl, st []string
	for _, na := range c.names {
		if _, ok := c.fcols[na]; ok {
			fl = append(fl, na)
		} else {
			st = append(st, na)
		}
	}

	tc := &dstream.CSVTypeConf{Float64: fl, String: st}
	dx := dstream.FromCSV(&buf).TypeConf(tc).ChunkSize(chunkSize(c.nrow)).HasHeader().Done()
	da := dstream.MemCopy(dx, false)
	da.Reset()

	return da
}

func (c *Cohort) clone() *Cohort {
	cn := &Cohort{
		names:     make([]string, len(c.names)),
		fcols:     make(map[string][]float64, len(c.fcols)),
		scols:     make(map[string][]string, len(c.scols)),
		timevar:   c.timevar,
		statusvar: c.statusvar,
		nrow:      c.nrow,
	}
	copy(cn.names, c.names)
	for na, v := range c.fcols {
		cn.fcols[na] = v
	}
	for na, v := range c.scols {
		cn.scols[na] = v
	}
	return cn
}

func chunkSize(nrow int) int {
	if nrow < 1 {
		return 1
	}
	return nrow
}

func (c *Cohort) String() string {
	return fmt.Sprintf("cohort with %d subjects, %d columns (time=%s, status=%s)",
		c.nrow, len(c.names), c.timevar, c.statusvar)
}
