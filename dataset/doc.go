// Package dataset loads and summarizes right-censored survival cohorts.
//
// A cohort has one row per subject with a follow-up time, an event
// indicator, and covariates.  Cohorts are read from CSV through the
// dstream pipeline (typed columns, rows with missing values dropped) and
// held in memory; Dstream rematerializes a cohort for the model-fitting
// packages.
package dataset
