// Package template defines the template engine seam renderers build on.
// Implementations live in subpackages; pongo provides the pongo2 one.
package template
