// Package runlog persists a history of pipeline runs to SQLite so operators
// can audit what was produced, published, or abandoned and why.
package runlog
