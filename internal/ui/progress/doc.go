// Package progress provides progress indication on stderr.
//
// A [Spinner] covers the profile and repository lookups; a [ProgressBar]
// counts README previews as they arrive. Both render only when their
// output is a terminal, so piped output and tests stay clean.
package progress
