// Package app holds the explicit application state shared by every surface:
// the current language and configuration, the rendered form, the persistence
// loop, and the generation counter that discards stale configuration loads.
//
// All operations on an App are serialised by a single mutex, so two report
// compilations never interleave. Configuration retrieval is the only step
// that runs outside the lock.
package app
