package lifetable

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Point is one vertex of a survival-curve step plot.
type Point struct {
	Time float64
	Prob float64
}

// Steps expands a fitted survival curve (distinct event times and the
// probability just after each) into the vertex list of a right-continuous
// step plot.  The curve starts at (0, 1); each event time contributes a
// vertical drop, so every time appears twice.
func Steps(times, probs []float64) []Point {

	pts := []Point{{Time: 0, Prob: 1}}
	prev := 1.0
	for i := range times {
		pts = append(pts, Point{Time: times[i], Prob: prev})
		pts = append(pts, Point{Time: times[i], Prob: probs[i]})
		prev = probs[i]
	}
	return pts
}

// WriteCurve writes time,prob rows for the step plot of a survival curve,
// for plotting outside of Go.
func WriteCurve(w io.Writer, times, probs []float64) error {

	cw := csv.NewWriter(w)
	for _, p := range Steps(times, probs) {
		rec := []string{
			strconv.FormatFloat(p.Time, 'f', 6, 64),
			strconv.FormatFloat(p.Prob, 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "writing curve point")
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "flushing curve points")
}
