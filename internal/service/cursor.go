package service

import "fmt"

// SyncCursor is the resumable position of a catalog synchronization run.
// It is held by the batch driver and advanced one product per step; the
// integrator itself keeps no run state, so a run can be abandoned between
// steps and resumed later from the last returned cursor.
type SyncCursor struct {
	// Offset into the remote catalog.
	Offset int
	// Total remote product count, recorded on the first fetch.
	Total int
	// TotalKnown is false until the first page has been fetched.
	TotalKnown bool
	// Synced counts products reconciled without error.
	Synced int
}

// Done reports whether the run has reached the end of the remote catalog.
func (c SyncCursor) Done() bool {
	return c.TotalKnown && c.Offset >= c.Total
}

// Progress returns the completed fraction of the run, 0 when the total is
// not yet known.
func (c SyncCursor) Progress() float64 {
	if !c.TotalKnown || c.Total == 0 {
		return 0
	}
	return float64(c.Offset) / float64(c.Total)
}

// Message returns the operator progress message for the current position.
func (c SyncCursor) Message() string {
	return fmt.Sprintf("Synchronized %d of %d products.", c.Offset, c.Total)
}
