package pocket

import (
	"errors"
	"fmt"
	"testing"
)

type pos struct {
	name      string
	line, col int
}

func (p pos) SourceName() string { return p.name }
func (p pos) Line() int          { return p.line }
func (p pos) Col() int           { return p.col }

func TestNewError(t *testing.T) {
	samples := []struct {
		name      string
		line, col int
		msg       string
	}{
		{"", 0, 0, "oops"},
		{"", 2, 3, "oops at line 2 col 3"},
		{"a.hml", 2, 3, "oops in a.hml at line 2 col 3"},
		{"a.hml", 0, 3, "oops"},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d", i), func(t *testing.T) {
			e := NewError(SyntaxErrors, "oops", s.name, s.line, s.col)
			if e.Error() != s.msg {
				t.Fatalf("expecting %q, got %q", s.msg, e.Error())
			}
		})
	}
}

func TestFormatErrorPos(t *testing.T) {
	e := FormatErrorPos(pos{"x.hml", 4, 1}, BuildErrors+1, "bad %s", "node")
	if e.Message != "bad node in x.hml at line 4 col 1" {
		t.Fatalf("unexpected message %q", e.Message)
	}
	if e.Line != 4 || e.Col != 1 || e.SourceName != "x.hml" {
		t.Fatalf("unexpected position %d:%d in %q", e.Line, e.Col, e.SourceName)
	}
}

func TestErrorCode(t *testing.T) {
	if c := ErrorCode(FormatError(StyleErrors, "x")); c != StyleErrors {
		t.Fatalf("expecting %d, got %d", StyleErrors, c)
	}
	if c := ErrorCode(errors.New("x")); c != 0 {
		t.Fatalf("expecting 0, got %d", c)
	}
	if c := ErrorCode(nil); c != 0 {
		t.Fatalf("expecting 0, got %d", c)
	}
}

func TestWrappedErrorCode(t *testing.T) {
	e := fmt.Errorf("a.hml: %w", FormatError(ConfigErrors, "x"))
	if c := ErrorCode(e); c != ConfigErrors {
		t.Fatalf("expecting %d, got %d", ConfigErrors, c)
	}
}
