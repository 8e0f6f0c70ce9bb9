// Package template defines the renderer-agnostic template seam used by the
// page shell. The gotemplate subpackage provides the pongo2-backed engine.
package template
