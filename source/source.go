// Package source defines template source text and position mapping.
package source

import (
	"bytes"
	"slices"
	"unicode/utf8"
)

// Source holds the content of a single template file.
// Line breaks are expected to be normalized (see NormalizeNewlines).
type Source struct {
	name    string
	content []byte
	// byte offsets of line starts, the first one is always 0
	lines []int
}

// New creates new Source, content is not copied.
func New(name string, content []byte) *Source {
	lines := make([]int, 1, bytes.Count(content, []byte("\n"))+1)
	for i, c := range content {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Source{name: name, content: content, lines: lines}
}

// NormalizeNewlines replaces CR LF and lone CR line breaks with LF.
// Returns content itself if it contains no CR.
func NormalizeNewlines(content []byte) []byte {
	if bytes.IndexByte(content, '\r') < 0 {
		return content
	}

	result := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(result, []byte("\r"), []byte("\n"))
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// Text returns content between two byte offsets, offsets are clamped.
func (s *Source) Text(start, end int) string {
	l := len(s.content)
	start = max(0, min(start, l))
	end = max(start, min(end, l))
	return string(s.content[start:end])
}

// LineCol returns 1-based line and column (in runes) for a byte offset.
func (s *Source) LineCol(pos int) (line, col int) {
	line, lineStart, pos := s.locate(pos)
	return line + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Point returns 0-based row and byte column for a byte offset.
func (s *Source) Point(pos int) (row, col int) {
	line, lineStart, pos := s.locate(pos)
	return line, pos - lineStart
}

// Pos returns byte offset for 1-based line and column (in bytes).
func (s *Source) Pos(line, col int) int {
	switch {
	case line <= 0 || col <= 0:
		return 0
	case line > len(s.lines):
		return len(s.content)
	}
	return min(s.lines[line-1]+col-1, len(s.content))
}

// locate clamps pos to content and finds its line.
func (s *Source) locate(pos int) (line, lineStart, clamped int) {
	pos = max(0, min(pos, len(s.content)))
	i, found := slices.BinarySearch(s.lines, pos)
	if !found {
		i--
	}
	return i, s.lines[i], pos
}

// Pos is a position in a source, implements pocket.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for byte offset pos, src may be nil.
func NewPos(src *Source, pos int) Pos {
	result := Pos{src: src, pos: pos}
	if src != nil {
		result.line, result.col = src.LineCol(pos)
	}
	return result
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
