// Package rank implements the lead scoring, filter/rank and aggregation
// functions.
//
// Everything in this package except Cache is a pure function over its
// arguments: no I/O, no clock, no shared state. Given the same leads and the
// same filter spec, Rank always returns a value-identical result.
//
// The ranking process:
//  1. Category filter (industry and region, each either All or exact match)
//  2. Text filter (case-insensitive substring over the lead's text fields)
//  3. Score attachment (unweighted mean of the four metrics)
//  4. Optional high-value threshold (score >= HighValueThreshold)
//  5. Stable sort by score, descending
//
// Summarize computes per-region counts and average scores over an
// unfiltered lead list.
package rank
