// Package template defines the template engine seam document renderers
// execute through. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
