package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{9, 4, 4},
			{10, 4, 5},
			{11, 4, 6},
			{12, 4, 7},
			{13, 4, 8},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		" ": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
		},
		"\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
			{1, 2, 2},
			{1, 3, 1},
		},
		"hello\nworld\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 3, 2},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestSourcePoint(t *testing.T) {
	source := New("", []byte("ab\n\tcd\n"))
	samples := []result{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{7, 2, 0},
		{50, 2, 0},
	}

	for _, res := range samples {
		row, col := source.Point(res.pos)
		if row != res.line || col != res.col {
			t.Errorf("pos %d: expected row %d col %d, got %d, %d", res.pos, res.line, res.col, row, col)
		}
	}
}

func TestSourceText(t *testing.T) {
	source := New("", []byte("[template]"))
	samples := []struct {
		start, end int
		text       string
	}{
		{1, 9, "template"},
		{-1, 1, "["},
		{9, 100, "]"},
		{5, 2, ""},
	}

	for _, s := range samples {
		if got := source.Text(s.start, s.end); got != s.text {
			t.Errorf("%d:%d: expecting %q, got %q", s.start, s.end, s.text, got)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	samples := map[string]string{
		"":             "",
		"a\nb":         "a\nb",
		"a\r\nb\r\n":   "a\nb\n",
		"a\rb\r\r\nc":  "a\nb\n\nc",
	}

	for text, expected := range samples {
		if got := string(NormalizeNewlines([]byte(text))); got != expected {
			t.Errorf("sample %q: expecting %q, got %q", text, expected, got)
		}
	}
}

func TestNewPos(t *testing.T) {
	source := New("x.hml", []byte("a\nbc"))
	for _, r := range []result{{3, 2, 2}, {4, 2, 3}} {
		p := NewPos(source, r.pos)
		if p.SourceName() != "x.hml" || p.Line() != r.line || p.Col() != r.col || p.Pos() != r.pos {
			t.Fatalf("unexpected position %s %d:%d (%d)", p.SourceName(), p.Line(), p.Col(), p.Pos())
		}
	}

	p := NewPos(nil, 3)
	if p.SourceName() != "" || p.Line() != 0 || p.Col() != 0 {
		t.Fatalf("unexpected position %s %d:%d", p.SourceName(), p.Line(), p.Col())
	}
}
