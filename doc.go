// Package deepdives explores survival analysis on right-censored cohort data.
//
// The module is a guided tour of Kaplan-Meier estimation and Cox
// proportional-hazards regression, delegating all estimation to the
// kshedden statistics stack and adding the small derived tabulations that
// make the fitted objects easier to read.
//
// # Packages
//
//   - dataset: cohort loading, derived columns, summaries
//   - lifetable: risk/event/censoring counts, discrete hazard rates,
//     Nelson-Aalen accumulation, survival-curve step points
//   - coxph: proportional-hazards fitting, ridge paths, knockoff
//     screening, factor covariates, likelihood-ratio tests
//
// # Quick start
//
// Fit a Cox model to the bundled breast-cancer cohort:
//
//	c, _ := dataset.Load("data/gbsg.csv", dataset.Schema{
//		Time:    "rfstime",
//		Status:  "status",
//		Float64: []string{"age", "size", "grade", "nodes"},
//	})
//	m, _ := coxph.New(c, coxph.Config{Formula: "age + size + grade + nodes"})
//	r, _ := m.Fit()
//	r.Render(os.Stdout)
//
// The cmd/survdive command runs the same analyses from the command line.
package deepdives
