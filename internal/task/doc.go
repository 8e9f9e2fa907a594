// Package task defines the task list that commands operate on.
//
// Positions shown to the user are one-based; the list stores tasks in a
// zero-based slice. Index converts between the two and rejects non-positive
// user positions. Whether an Index actually addresses a task is decided by
// List at the time of use, since the list length changes between parsing
// and execution.
package task
