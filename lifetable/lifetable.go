package lifetable

import (
	"sort"

	"github.com/kshedden/duration"
	"github.com/pkg/errors"

	"github.com/gdario/statistical-deep-dives/dataset"
)

// Row describes the cohort at one distinct observed follow-up time.
type Row struct {

	// Time is the distinct observed follow-up time.
	Time float64

	// AtRisk is the number of subjects still under observation just
	// before Time.
	AtRisk int

	// Events is the number of events observed at Time.
	Events int

	// Censored is the number of subjects censored at Time.
	Censored int

	// SurvProb is the Kaplan-Meier estimate of survival just after
	// Time.
	SurvProb float64

	// CumHazard is the Nelson-Aalen estimate of cumulative hazard just
	// after Time.
	CumHazard float64
}

// Table is a life table over the distinct observed follow-up times of a
// cohort.  The counts are tabulated directly from the data; the survival
// probabilities come from the fitted Kaplan-Meier curve.
type Table struct {
	Rows []Row

	TotalEvents   int
	TotalCensored int
}

// New builds the life table for a cohort.  The Kaplan-Meier survival
// probabilities are taken from a survival function fit to the same data.
func New(c *dataset.Cohort) (*Table, error) {

	t, err := Counts(c.Time(), c.Status())
	if err != nil {
		return nil, err
	}

	sf := duration.NewSurvfuncRight(c.Dstream(), c.TimeVar(), c.StatusVar()).Done()
	t.attach(sf.Time(), sf.SurvProb())

	return t, nil
}

// Counts tabulates at-risk, event, and censoring counts at each distinct
// observed time, along with the Nelson-Aalen cumulative hazard.  The
// survival probability column is left at 1 for every row; use New to fill
// it from a fitted curve.
func Counts(time, status []float64) (*Table, error) {

	if len(time) == 0 {
		return nil, errors.New("empty cohort")
	}
	if len(time) != len(status) {
		return nil, errors.Errorf("got %d times for %d status values", len(time), len(status))
	}

	events := make(map[float64]int)
	censored := make(map[float64]int)
	var times []float64
	for i, t := range time {
		if events[t] == 0 && censored[t] == 0 {
			times = append(times, t)
		}
		if status[i] == 1 {
			events[t]++
		} else {
			censored[t]++
		}
	}
	sort.Float64s(times)

	t := &Table{}
	atrisk := len(time)
	cumhaz := 0.0
	for _, tm := range times {
		d := events[tm]
		cn := censored[tm]
		cumhaz += float64(d) / float64(atrisk)
		t.Rows = append(t.Rows, Row{
			Time:      tm,
			AtRisk:    atrisk,
			Events:    d,
			Censored:  cn,
			SurvProb:  1,
			CumHazard: cumhaz,
		})
		t.TotalEvents += d
		t.TotalCensored += cn
		atrisk -= d + cn
	}

	return t, nil
}

// attach aligns a fitted survival curve (distinct event times and the
// survival probability just after each) onto the life table rows.  The
// curve is a right-continuous step function, so each row takes the
// probability at the largest curve time not exceeding the row time.
func (t *Table) attach(times, probs []float64) {

	for i := range t.Rows {
		p := 1.0
		for j, tm := range times {
			if tm > t.Rows[i].Time {
				break
			}
			p = probs[j]
		}
		t.Rows[i].SurvProb = p
	}
}

// EventTimes returns the distinct times at which events occurred, with the
// survival probability just after each.
func (t *Table) EventTimes() (times, probs []float64) {

	for _, r := range t.Rows {
		if r.Events > 0 {
			times = append(times, r.Time)
			probs = append(probs, r.SurvProb)
		}
	}
	return times, probs
}
