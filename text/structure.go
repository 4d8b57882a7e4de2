// Package text holds the positional view of one analyzed source buffer:
// the raw contents, the line index and the token stream, with conversions
// between byte offsets and protocol line/column positions.
package text

import (
	"sort"
	"strings"

	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/token"
)

// Structure is an immutable positional index over one version of a
// document's contents. All conversions clamp rather than fail: an offset or
// position outside the document (stale snapshot racing an edit) yields the
// nearest valid result and callers treat it as advisory.
type Structure struct {
	contents  string
	lineStart []int // byte offset of the first character of each line
	tokens    []token.Token
}

// NewStructure indexes contents. The token stream must have been lexed from
// the same contents.
func NewStructure(contents string, tokens []token.Token) *Structure {
	starts := []int{0}
	for i := 0; i < len(contents); i++ {
		if contents[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Structure{contents: contents, lineStart: starts, tokens: tokens}
}

func (s *Structure) Contents() string      { return s.contents }
func (s *Structure) Tokens() []token.Token { return s.tokens }
func (s *Structure) LineCount() int        { return len(s.lineStart) }

// LineColAt converts a byte offset to a zero-based line/column position,
// clamping offsets outside the document.
func (s *Structure) LineColAt(offset int) lsp.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.contents) {
		offset = len(s.contents)
	}
	// first line starting after offset, minus one
	line := sort.Search(len(s.lineStart), func(i int) bool { return s.lineStart[i] > offset }) - 1
	return lsp.Position{
		Line:      int32(line),
		Character: int32(offset - s.lineStart[line]),
	}
}

// OffsetAt is the inverse of LineColAt for valid positions; out-of-range
// lines and columns clamp to the nearest document position.
func (s *Structure) OffsetAt(pos lsp.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if int(pos.Line) >= len(s.lineStart) {
		return len(s.contents)
	}
	start := s.lineStart[pos.Line]
	end := len(s.contents)
	if int(pos.Line)+1 < len(s.lineStart) {
		end = s.lineStart[pos.Line+1] - 1 // exclude the newline
	}
	off := start + int(pos.Character)
	if pos.Character < 0 || off < start {
		return start
	}
	if off > end {
		return end
	}
	return off
}

// RangeForSpan converts a byte span to a protocol range.
func (s *Structure) RangeForSpan(start, end int) lsp.Range {
	return lsp.Range{Start: s.LineColAt(start), End: s.LineColAt(end)}
}

// RangeForToken returns the range covering the token's text.
func (s *Structure) RangeForToken(tok token.Token) lsp.Range {
	return s.RangeForSpan(tok.Offset, tok.End())
}

// FullRange covers the entire document.
func (s *Structure) FullRange() lsp.Range {
	return s.RangeForSpan(0, len(s.contents))
}

// TokenAt resolves the token whose span contains the given position. Tokens
// are ordered by offset, so a binary search finds the candidate; EOF and
// out-of-token positions report false.
func (s *Structure) TokenAt(pos lsp.Position) (token.Token, bool) {
	offset := s.OffsetAt(pos)
	i := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].End() > offset })
	if i >= len(s.tokens) {
		return token.Token{}, false
	}
	tok := s.tokens[i]
	if tok.IsEOF() || offset < tok.Offset {
		return token.Token{}, false
	}
	return tok, true
}

// LineSpan returns the byte span [start, end) of the given half-open
// zero-based line interval, where end is the offset one past the last
// line's terminating newline (or the end of the document).
func (s *Structure) LineSpan(startLine, endLine int) (int, int) {
	if startLine < 0 {
		startLine = 0
	}
	if startLine >= len(s.lineStart) {
		return len(s.contents), len(s.contents)
	}
	start := s.lineStart[startLine]
	end := len(s.contents)
	if endLine < len(s.lineStart) {
		end = s.lineStart[endLine]
	}
	if end < start {
		end = start
	}
	return start, end
}

// LineText returns the text of the zero-based line without its newline.
func (s *Structure) LineText(line int) string {
	if line < 0 || line >= len(s.lineStart) {
		return ""
	}
	start, end := s.LineSpan(line, line+1)
	return strings.TrimSuffix(s.contents[start:end], "\n")
}
