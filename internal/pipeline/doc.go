// Package pipeline fans per-file work out to a fixed pool of goroutines and
// hands the results back to the caller in input order.
package pipeline
