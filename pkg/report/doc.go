// Package report compiles a rendered form into its two representations: the
// numbered human-readable text shown to the user, and the structured report
// keyed by section and field identity that is persisted between sessions.
//
// Both are computed by a full scan of the form on every call.
package report
