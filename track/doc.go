// Package track parses GPX recordings into an ordered time series of
// geographic samples and answers temporal nearest-neighbor queries on them.
//
// A Track is immutable once constructed and safe to share across
// goroutines. Queries run in O(log n) over the sorted sample sequence.
package track
