// Package template defines the renderer-agnostic template contract that page
// renderers depend on. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
