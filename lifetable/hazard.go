package lifetable

import "math"

// HazardRow is one interval of the discrete-time hazard table.  The
// interval runs from Start (a distinct observed time) up to the next
// distinct observed time.
type HazardRow struct {
	Start  float64
	End    float64 // NaN for the final, unbounded interval
	Width  float64 // NaN for the final interval
	AtRisk int
	Events int

	// Rate is the discrete hazard estimate
	//
	//	events / (at risk * width)
	//
	// It is NaN when the interval contains censored subjects, since the
	// person-time denominator is then not well defined, and NaN for the
	// final interval.
	Rate float64
}

// Hazard derives the discrete-time hazard table from the life table.
func (t *Table) Hazard() []HazardRow {

	var hz []HazardRow
	for i, r := range t.Rows {

		h := HazardRow{
			Start:  r.Time,
			End:    math.NaN(),
			Width:  math.NaN(),
			AtRisk: r.AtRisk,
			Events: r.Events,
			Rate:   math.NaN(),
		}

		if i+1 < len(t.Rows) {
			h.End = t.Rows[i+1].Time
			h.Width = h.End - h.Start
			if r.Censored == 0 {
				h.Rate = float64(r.Events) / (float64(r.AtRisk) * h.Width)
			}
		}

		hz = append(hz, h)
	}

	return hz
}
