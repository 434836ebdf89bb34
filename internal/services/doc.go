// Package services holds the shared error taxonomy and context plumbing used
// by every pipeline stage. Stage packages wrap their failures with the
// sentinel markers defined here; the workflow driver classifies errors with
// errors.Is against the same markers.
package services
