// Package resource bounds the resources used by concurrent clustering runs:
// the number of runs in flight, their estimated memory, and the IO
// throughput of snapshot reads and writes.
//
// A nil *Controller imposes no limits.
package resource
