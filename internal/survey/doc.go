// Package survey loads questionnaire respondent data from a JSON table and
// derives summary statistics from it: age distribution, email filtering,
// missing-answer imputation, per-subject scoring, and gender/age group
// means.
//
// The Analyzer is constructed with a validated file path and populated once
// by ReadData. The loaded table is immutable after that point; every
// operation returns fresh data and never touches the original, so the
// independent analyses may run concurrently over the same analyzer.
//
// Missing values are first class: nullable cells propagate through means,
// floors and comparisons per row instead of being coerced to zero, and
// malformed rows degrade to missing outputs rather than errors. Only
// construction and ReadData can fail.
package survey
