package api

import "time"

// DefaultSearchTimeout bounds a search when the request does not name one.
const DefaultSearchTimeout = 60 * time.Second

// MaxSearchTimeout is the hard ceiling on a single request's search time.
const MaxSearchTimeout = 10 * time.Minute

// searchTimeout normalizes a requested timeout in seconds. Zero or negative
// requests get the default; oversized requests are clamped to the ceiling.
func searchTimeout(seconds float64) time.Duration {
	if seconds <= 0 {
		return DefaultSearchTimeout
	}
	d := time.Duration(seconds * float64(time.Second))
	if d > MaxSearchTimeout {
		return MaxSearchTimeout
	}
	return d
}
