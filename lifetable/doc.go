// Package lifetable derives discrete-time tabulations from right-censored
// survival data.
//
// The life table lists, at each distinct observed follow-up time, the
// number of subjects at risk, the events, and the censorings, together
// with the Kaplan-Meier survival probability (taken from a fitted
// duration.SurvfuncRight, not recomputed) and the Nelson-Aalen cumulative
// hazard.
//
// The hazard table restates the life table as interval rates: between
// consecutive distinct observed times, the hazard is the event count
// divided by the product of the at-risk count and the interval width.
// Intervals containing censored subjects keep their counts but carry a NaN
// rate, since the person-time denominator is not well defined there.
//
// For the 18-subject cohort returned by dataset.Remission, the first event
// occurs at week 10 with all 18 subjects at risk, so the first interval
// (width 4) has hazard 1/(18*4).
package lifetable
