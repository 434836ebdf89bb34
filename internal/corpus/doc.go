// Package corpus samples candidate records from the flat CSV corpus using
// bounded randomized-offset scans.
package corpus
