// Package document implements the immutable rich-text model behind Quill.
//
// A State is a value: every transition (ToggleInlineStyle, ToggleBlockType,
// ToggleLink, InsertText, ...) returns a new State and leaves the old one
// untouched. Unchanged blocks are shared between states.
//
// Offsets are 0-based rune offsets inside a block. Ranges are half-open:
// [start, end).
package document
