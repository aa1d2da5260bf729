// Package stats turns raw daemon responses into classified table rows.
//
// The classifiers in this package are pure functions from a metric to a
// table.Cell (visible text plus severity). The Collector runs the fixed
// query sequence against one coin's daemon and returns a Result that is
// always full-arity: a failed coin yields a row of unavailable markers and
// a non-nil Result.Err, never a short row.
package stats
