// Package form holds the rendered, interactive state of a report form: the
// sections built from a config.Config, their inclusion toggles, the current
// field values, and the report surface that is recompiled on every change.
//
// A Form is not safe for concurrent use; callers serialise access (see
// pkg/app).
package form
