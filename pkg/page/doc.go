// Package page defines the per-request data consumed by the TrendMiner page
// shell: the RenderContext supplied by the hosting application, the named
// Blocks inserted at the shell's extension points, and the Site metadata that
// fills the fixed chrome. Values are plain data; rendering lives in
// pkg/renderers/shell.
package page
