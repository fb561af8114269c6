package coxph

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Result bundles the report quantities of a fitted proportional-hazards
// model.
type Result struct {

	// XNames are the covariate names, in the same order as Coef.
	XNames []string

	// Coef and SE are the coefficient estimates and standard errors.
	Coef []float64
	SE   []float64

	// HR are the hazard ratios exp(Coef).
	HR []float64

	// LinPred are the per-subject centered linear predictors.
	LinPred []float64

	// Concordance is the fraction of comparable subject pairs whose
	// predicted risk ordering matches the observed outcome ordering,
	// truncated at Tau.
	Concordance float64
	Tau         float64

	// LogLike and NullLogLike are the partial log-likelihoods of the
	// fitted and null models; LRT tests their difference.
	LogLike     float64
	NullLogLike float64
	LRT         LRTest

	summary string
}

// Summary returns the fitting library's coefficient summary text.
func (r *Result) Summary() string {
	return r.summary
}

// Render writes the coefficient table, concordance, and likelihood-ratio
// test to w.
func (r *Result) Render(w io.Writer) {

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Variable", "Coef", "SE", "Z", "HR"})
	for k, na := range r.XNames {
		z := r.Coef[k] / r.SE[k]
		tbl.Append([]string{
			na,
			strconv.FormatFloat(r.Coef[k], 'f', 4, 64),
			strconv.FormatFloat(r.SE[k], 'f', 4, 64),
			strconv.FormatFloat(z, 'f', 2, 64),
			strconv.FormatFloat(r.HR[k], 'f', 3, 64),
		})
	}
	tbl.Render()

	fmt.Fprintf(w, "Concordance: %.4f (truncated at %.1f)\n", r.Concordance, r.Tau)
	fmt.Fprintf(w, "Log-likelihood: %.4f (null %.4f)\n", r.LogLike, r.NullLogLike)
	fmt.Fprintf(w, "Likelihood ratio test: %.2f on %d df, p=%.4g\n", r.LRT.Stat, r.LRT.Df, r.LRT.Pvalue)
}

// RenderPath writes one line per ridge path point to w.
func RenderPath(w io.Writer, path []PathPoint) {
	for _, p := range path {
		fmt.Fprintf(w, "L2=%f  concordance=%f\n", p.L2, p.Concordance)
	}
}

// RenderScreen writes the knockoff screening table to w.
func RenderScreen(w io.Writer, rows []ScreenRow) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Variable", "Coef", "Stat", "FDR"})
	for _, r := range rows {
		tbl.Append([]string{
			r.Name,
			strconv.FormatFloat(r.Coef, 'f', 4, 64),
			strconv.FormatFloat(r.Stat, 'f', 4, 64),
			strconv.FormatFloat(r.FDR, 'f', 4, 64),
		})
	}
	tbl.Render()
}
