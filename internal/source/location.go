// Package source provides the file/line/column model shared by the
// compiler, the overlay protocol, and the editor bridge.
package source

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Location identifies where a rendered element originated in component
// source. Line and Column are 1-based, counting from the start of file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// String renders the location in the file:line:column form editors accept.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsZero reports whether the location carries no position.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0 && l.Column == 0
}

// LineIndex maps byte offsets in a source text to 1-based line/column
// pairs. Columns count runes, not bytes, so positions match what editors
// display for non-ASCII source.
type LineIndex struct {
	src    string
	starts []int // byte offset of each line start, starts[0] == 0
}

// NewLineIndex builds the line table for src in one pass.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Position converts a byte offset into a 1-based line and column.
// Offsets outside the text are clamped to its bounds.
func (ix *LineIndex) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.src) {
		offset = len(ix.src)
	}

	// Greatest line start <= offset.
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1

	col := utf8.RuneCountInString(ix.src[ix.starts[i]:offset])
	return i + 1, col + 1
}
