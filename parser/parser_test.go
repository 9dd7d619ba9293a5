package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/internal/test"
)

type srcExprSample struct {
	src, expr string
}

type srcErrSample struct {
	src string
	err int
}

func testSamples(t *testing.T, samples []srcExprSample) {
	for i, sample := range samples {
		tree, e := Parse("sample", []byte(sample.src))
		if e != nil {
			t.Errorf("sample #%d: got error: %s", i, e.Error())
			continue
		}

		got := cst.Sexp(tree.Root())
		if got != sample.expr {
			t.Errorf("sample #%d:\nexpecting %s\ngot       %s", i, sample.expr, got)
		}
	}
}

func testErrorSamples(t *testing.T, samples []srcErrSample) {
	for i, sample := range samples {
		_, e := Parse("sample", []byte(sample.src))
		if e == nil {
			t.Errorf("sample #%d: expecting error code %d, got success", i, sample.err)
			continue
		}
		test.ExpectErrorCode(t, sample.err, e)
	}
}

func TestElements(t *testing.T) {
	samples := []srcExprSample{
		{"[template]\na", "(document (template (element (name))))"},
		{"[template]\na\n", "(document (template (element (name))))"},
		{"[template]\r\na\r\nb\r\n", "(document (template (element (name)) (element (name))))"},
		{
			"[template]\ncolumn\n  row\n  text",
			"(document (template (element (name) (children (element (name)) (element (name))))))",
		},
		{
			"[template]\na\n  b\n    c\nd",
			"(document (template (element (name) (children (element (name) (children (element (name)))))) (element (name))))",
		},
		{
			"[template]\na\n\n#! comment\nline !#\n  b",
			"(document (template (element (name) (children (element (name))))))",
		},
	}
	testSamples(t, samples)
}

func TestSelectorsAndAttributes(t *testing.T) {
	samples := []srcExprSample{
		{"[template]\na#main", "(document (template (element (name) (selectors (id)))))"},
		{"[template]\na.x.y", "(document (template (element (name) (selectors (class) (class)))))"},
		{
			`[template]
a#main.x { :width="size" @click="grow(fast, now)" ...panel }`,
			"(document (template (element (name) (selectors (id) (class)) (attributes " +
				"(prop (computed) (name) (function (name))) " +
				"(event (name) (function (name) (args (arg) (arg)))) " +
				"(style (name))))))",
		},
		{
			"[template]\na { b=\"c\", d=\"e\" }\n  f",
			"(document (template (element (name) (attributes (prop (name) (function (name))) (prop (name) (function (name)))) (children (element (name))))))",
		},
		{"[template]\na {}", "(document (template (element (name) (attributes))))"},
	}
	testSamples(t, samples)
}

func TestMacros(t *testing.T) {
	src := `[template]
list
  [for="item in items"]
  [if="visible(item)"]
    text
  [else]
    empty
  [if="ok"]
    yes
  [for="x in xs"]
    row`
	expr := "(document (template (element (name) (children " +
		"(for_if_macro (name) (list_name) (if_function (name) (args (arg))) (children (element (name)))) " +
		"(else_macro (children (element (name)))) " +
		"(if_macro (function (name)) (children (element (name)))) " +
		"(for_macro (name) (list_name) (children (element (name))))))))"
	testSamples(t, []srcExprSample{{src, expr}})
}

func TestStyleSections(t *testing.T) {
	samples := []srcExprSample{
		{
			`[template]
a
[style]
a@hover {
  color: rgb(255, 0, 0);
  width: 12;
  ratio: 1.5;
  bold: true;
  label: "x";
}`,
			"(document (template (element (name))) (style_template (style (name) (event_name) (children " +
				"(element (name) (style_func (function) (value))) " +
				"(element (name) (style_int)) " +
				"(element (name) (style_float)) " +
				"(element (name) (style_bool)) " +
				"(element (name) (style_string))))))",
		},
		{
			"[style]\na {\n  w: 1;\n}\nb {}\n[template]\nc\n  d",
			"(document (style_template (style (name) (children (element (name) (style_int)))) (style (name) (children))) " +
				"(template (element (name) (children (element (name))))))",
		},
		{"[style]\na { }", "(document (style_template (style (name) (children))))"},
	}
	testSamples(t, samples)
}

func TestRecovery(t *testing.T) {
	samples := []srcExprSample{
		{"[template]\na { foo, w=\"x\" }", "(document (template (element (name) (attributes (ERROR) (prop (name) (function (name)))))))"},
		{"[template]\na { @=\"x\" }", "(document (template (element (name) (attributes (ERROR)))))"},
		{"[template]\n  a { ~ }\n", "(document (template (element (name) (attributes (ERROR)))))"},
		{"[template]\na { x=\"f(1, 2, 3)\", y=\"g\" }", "(document (template (element (name) (attributes (ERROR) (prop (name) (function (name)))))))"},
		{"[unknown]\nwhatever", "(document (ERROR))"},
		{"[template]\na\n[unknown]", "(document (template (element (name))) (ERROR))"},
		{"a\n  b", "(ERROR)"},
		{"", "(ERROR)"},
	}
	testSamples(t, samples)
}

func TestErrorNodeText(t *testing.T) {
	tree, e := Parse("sample", []byte("[template]\na { foo bar , w=\"x\" }"))
	test.ExpectNoError(t, e)

	n := cst.Find(tree.Root(), cst.Error)
	test.Assert(t, n != nil, "no error node")
	test.ExpectString(t, "foo bar", tree.Text(n))
	test.ExpectInt(t, 1, n.StartPoint().Row)
	test.ExpectInt(t, 4, n.StartPoint().Column)
}

func TestQuotedErrorNodeText(t *testing.T) {
	tree, e := Parse("sample", []byte("[template]\na { x=\"f(1, 2)\" }"))
	test.ExpectNoError(t, e)

	n := cst.Find(tree.Root(), cst.Error)
	test.Assert(t, n != nil, "no error node")
	test.ExpectString(t, `x="f(1, 2)"`, tree.Text(n))
}

func TestErrors(t *testing.T) {
	samples := []srcErrSample{
		{"[template]", UnexpectedEofError},
		{"[template]\n", UnexpectedEofError},
		{"[template]\na {", UnexpectedEofError},
		{"[template]\na { b=\"c\"", UnexpectedEofError},
		{"[template]\n[if=\"x\"]\n", UnexpectedEofError},
		{"[template]\na\n    b\n  c", IndentationError},
		{"[template]\na\n[template]\nb", SectionError},
		{"[style]\na {}\n[style]\nb {}", SectionError},
		{"[template]\na\n[style]\na {}\n[template]\nb", SectionError},
		{"[style]\n", UnexpectedEofError},
		{"[style]\na { w: ; }", UnexpectedTokenError},
		{"[style]\na { w: maybe; }", UnexpectedTokenError},
		{"[template]\n[for=\"x of xs\"]\n  a", UnexpectedTokenError},
		{"[template]\n[while=\"x\"]\n  a", UnexpectedTokenError},
		{"[template]\na#", UnexpectedEofError},
		{"[template]\n~", UnexpectedTokenError},
		{"[template]\n  élan\n", UnexpectedTokenError},
		{"[template]\n-x", UnexpectedTokenError},
		{"[template]\na\n  ~", UnexpectedTokenError},
		{"[template]\na#~", UnexpectedTokenError},
		{"[template]\n[if=\"~\"]\n  a", UnexpectedTokenError},
		{"[style]\n~ {}", UnexpectedTokenError},
		{"[style]\n  a { b: ~; }", UnexpectedTokenError},
	}
	testErrorSamples(t, samples)
}

func TestErrorPosition(t *testing.T) {
	_, e := Parse("sample.hml", []byte("[template]\na\n    b\n  c"))
	test.Assert(t, e != nil, "expecting error")
	test.Assert(t, strings.Contains(e.Error(), "sample.hml at line 4 col 3"), "wrong position in %q", e.Error())
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, e := New(WithLogger(log)).Parse("sample", []byte("[template]\n[for=\"x in xs\"]\n  a\n[oops]"))
	test.ExpectNoError(t, e)
	test.Assert(t, strings.Contains(buf.String(), "for macro"), "no trace in %q", buf.String())
	test.Assert(t, strings.Contains(buf.String(), "unknown section"), "no warning in %q", buf.String())
}

func FuzzParse(f *testing.F) {
	for _, src := range []string{
		"[template]\na#main.x { :width=\"size\" @click=\"grow(fast, now)\" ...panel }\n  b",
		"[template]\nlist\n  [for=\"item in items\"]\n  [if=\"visible(item)\"]\n    text\n  [else]\n    empty",
		"[style]\na@hover {\n  color: rgb(255, 0, 0);\n  label: \"x\";\n}\n[template]\nc",
		"[template]\na { foo bar , w=\"x\" }",
		"[template]\n  élan { ~ }\n[bogus]",
		"#! comment !#\n[template]\n\ta\n",
	} {
		f.Add(src)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tree, e := Parse("fuzz", []byte(src))
		if (tree == nil) == (e == nil) {
			t.Fatalf("expecting either tree or error for %q, got %v, %v", src, tree, e)
		}
	})
}
