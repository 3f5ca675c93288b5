// Package inventory describes the opened libraries and resolved capabilities
// of a run as a single cty value, and renders it as JSON or as text.
package inventory
