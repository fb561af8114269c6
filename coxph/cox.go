package coxph

import (
	"math"
	"strings"

	"github.com/kshedden/dstream/dstream"
	"github.com/kshedden/dstream/formula"
	"github.com/kshedden/duration"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	"github.com/gdario/statistical-deep-dives/dataset"
)

// Config controls how a proportional-hazards model is built.
type Config struct {

	// Formula selects the covariates, e.g. "age + size + grade + nodes".
	// Interactions use '*', as in "age*grade".
	Formula string

	// Weight optionally names a case-weight column.
	Weight string

	// RefLevels optionally sets the reference level for categorical
	// covariates appearing in the formula.
	RefLevels map[string]string

	// L2 is a shared ridge penalty weight applied to every covariate; 0
	// disables the penalty.
	L2 float64

	// Norm scales the covariates before fitting.
	Norm bool

	// GradientThreshold is the optimizer convergence threshold; 0
	// selects 1e-3.
	GradientThreshold float64
}

// Model is a proportional-hazards model prepared for fitting.
type Model struct {
	da        dstream.Dstream
	timevar   string
	statusvar string
	weightvar string
	xnames    []string
	cfg       Config
}

// New builds a proportional-hazards model for the cohort from the formula
// in cfg.
func New(c *dataset.Cohort, cfg Config) (*Model, error) {

	if strings.TrimSpace(cfg.Formula) == "" {
		return nil, errors.New("empty model formula")
	}

	keep := []string{c.TimeVar(), c.StatusVar()}
	if cfg.Weight != "" {
		keep = append(keep, cfg.Weight)
	}

	fb := formula.New(cfg.Formula, c.Dstream()).Keep(keep...)
	if len(cfg.RefLevels) > 0 {
		fb = fb.RefLevels(cfg.RefLevels)
	}
	da := dstream.MemCopy(fb.Done(), false)

	kp := make(map[string]bool)
	for _, v := range keep {
		kp[v] = true
	}
	var xnames []string
	for _, v := range da.Names() {
		if !kp[v] {
			xnames = append(xnames, v)
		}
	}
	if len(xnames) == 0 {
		return nil, errors.Errorf("formula %q selects no covariates", cfg.Formula)
	}

	return &Model{
		da:        da,
		timevar:   c.TimeVar(),
		statusvar: c.StatusVar(),
		weightvar: cfg.Weight,
		xnames:    xnames,
		cfg:       cfg,
	}, nil
}

// XNames returns the covariate names in fitting order.
func (m *Model) XNames() []string {
	na := make([]string, len(m.xnames))
	copy(na, m.xnames)
	return na
}

func (m *Model) optSettings() *optimize.Settings {
	opt := optimize.DefaultSettings()
	opt.GradientThreshold = m.cfg.GradientThreshold
	if opt.GradientThreshold == 0 {
		opt.GradientThreshold = 1e-3
	}
	return opt
}

// Fit estimates the model and derives the report quantities: coefficient
// estimates, hazard ratios, per-subject linear predictors, concordance,
// and the likelihood-ratio test against the null model.
func (m *Model) Fit() (*Result, error) {

	m.da.Reset()
	dx := dstream.Shallow(m.da)

	ph := duration.NewPHReg(dx, m.timevar, m.statusvar).OptSettings(m.optSettings())
	if m.weightvar != "" {
		ph = ph.Weight(m.weightvar)
	}
	if m.cfg.L2 > 0 {
		l2 := make([]float64, len(m.xnames))
		for k := range l2 {
			l2[k] = m.cfg.L2
		}
		ph = ph.L2Weight(l2)
	}
	if m.cfg.Norm {
		ph = ph.Norm()
	}
	ph = ph.Done()

	rslt, err := ph.Fit()
	if err != nil {
		return nil, errors.Wrap(err, "fitting proportional hazards model")
	}

	coef := rslt.Params()
	se := rslt.StdErr()
	if len(coef) != len(m.xnames) {
		return nil, errors.Errorf("fit returned %d coefficients for %d covariates", len(coef), len(m.xnames))
	}
	for _, b := range coef {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, errors.New("fit returned non-finite coefficients")
		}
	}

	score := rslt.FittedValues(nil)

	dx.Reset()
	tm := dstream.GetCol(dx, m.timevar).([]float64)
	dx.Reset()
	st := dstream.GetCol(dx, m.statusvar).([]float64)

	var wgt []float64
	if m.weightvar != "" {
		dx.Reset()
		wgt = dstream.GetCol(dx, m.weightvar).([]float64)
	}

	tau := maxEventTime(tm, st)
	cc := duration.NewConcordance(tm, st, score).Done()

	ll := breslowLogLike(tm, st, score, wgt)
	ll0 := nullPartialLogLike(tm, st, wgt)
	lrt := lrTest(ll0, ll, len(m.xnames))

	r := &Result{
		XNames:      m.XNames(),
		Coef:        coef,
		SE:          se,
		LinPred:     score,
		Concordance: cc.Concordance(tau),
		Tau:         tau,
		LogLike:     ll,
		NullLogLike: ll0,
		LRT:         lrt,
		summary:     rslt.Summary(),
	}
	r.HR = make([]float64, len(coef))
	for k, b := range coef {
		r.HR[k] = math.Exp(b)
	}

	return r, nil
}

// maxEventTime returns the largest observed event time, used to truncate
// the concordance calculation.  A cohort with no events falls back to the
// largest follow-up time so the horizon is never degenerate.
func maxEventTime(time, status []float64) float64 {
	mx := 0.0
	any := false
	for i := range time {
		if status[i] != 1 {
			continue
		}
		any = true
		if time[i] > mx {
			mx = time[i]
		}
	}
	if !any {
		for _, t := range time {
			if t > mx {
				mx = t
			}
		}
	}
	return mx
}
