// Package assets loads the static scene configuration shipped in the
// resource directory: character metadata, backgrounds, fonts and text
// overlay layouts. The four YAML documents are decoded into typed records and
// returned as a single AppConfig snapshot that is never mutated afterwards.
package assets
