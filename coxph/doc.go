// Package coxph fits Cox proportional-hazards models to survival cohorts.
//
// Estimation is delegated to duration.PHReg; covariates are selected with
// a model formula.  On top of the fit the package reports hazard ratios,
// concordance, and a partial-likelihood ratio test, and offers ridge
// penalty paths, knockoff covariate screening, and randomized-SVD factor
// covariates for indicator blocks.
package coxph
