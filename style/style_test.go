package style

import (
	"strings"
	"testing"

	"github.com/skinnyjames/hokusai-pocket/internal/test"
)

const typedSample = `[style]
block {
  int: 12;
  float: 23.0;
  bool: false;
  string: "x";
}`

func TestTypedAttributes(t *testing.T) {
	sheet, e := Parse([]byte(typedSample))
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 1, len(sheet.Blocks))

	b := sheet.Blocks[0]
	test.ExpectString(t, "block", b.Name)
	test.ExpectString(t, DefaultEvent, b.EventName())

	samples := []struct {
		name, value string
		t           Type
	}{
		{"int", "12", Int},
		{"float", "23.0", Float},
		{"bool", "false", Bool},
		{"string", "x", String},
	}
	test.ExpectInt(t, len(samples), len(b.Attributes))
	for i, sample := range samples {
		a := b.Attributes[i]
		test.ExpectString(t, sample.name, a.Name)
		test.ExpectString(t, sample.value, a.Value)
		test.ExpectString(t, sample.t.String(), a.Type.String())
	}

	i, e := b.Attribute("int").Int()
	test.ExpectNoError(t, e)
	test.Expect(t, i == 12, 12, i)
	f, e := b.Attribute("float").Float()
	test.ExpectNoError(t, e)
	test.Expect(t, f == 23.0, 23.0, f)
	test.ExpectBool(t, false, b.Attribute("bool").Bool())
}

func TestBlocksAndEvents(t *testing.T) {
	src := `[template]
a
[style]
button {
  background: rgb(10, 20, 30);
}
button@hover {
  background: rgb(1, 2, 3, 4);
  padding: padding(5.0);
}
label {
}`
	sheet, e := Parse([]byte(src))
	test.ExpectNoError(t, e)
	test.ExpectStrings(t, []string{"button", "label"}, sheet.Names())
	test.ExpectInt(t, 3, len(sheet.Blocks))

	hover := sheet.Block("button", "hover")
	test.Assert(t, hover != nil, "no hover block")
	a := hover.Attribute("background")
	test.ExpectString(t, "rgb", a.Function)
	test.ExpectString(t, "1, 2, 3, 4", a.Value)
	test.ExpectString(t, "func", a.Type.String())

	test.Assert(t, sheet.Block("button", "") == sheet.Blocks[0], "wrong default block")
	test.Assert(t, sheet.Block("button", "press") == nil, "unexpected block")
	test.ExpectInt(t, 0, len(sheet.Block("label", DefaultEvent).Attributes))
}

func TestResolve(t *testing.T) {
	funcs := DefaultFunctions()
	samples := []struct {
		a        Attribute
		expected any
	}{
		{Attribute{Value: "12", Type: Int}, int64(12)},
		{Attribute{Value: "1.5", Type: Float}, 1.5},
		{Attribute{Value: "t", Type: Bool}, true},
		{Attribute{Value: "true", Type: Bool}, true},
		{Attribute{Value: "yes", Type: Bool}, false},
		{Attribute{Value: "text", Type: String}, "text"},
		{Attribute{Value: "255, 0, 0", Type: Func, Function: "rgb"}, Color{255, 0, 0, 255}},
		{Attribute{Value: "1,2,3,4", Type: Func, Function: "rgb"}, Color{1, 2, 3, 4}},
		{Attribute{Value: "2.5", Type: Func, Function: "padding"}, Padding{2.5, 2.5, 2.5, 2.5}},
		{Attribute{Value: "1, 2", Type: Func, Function: "outline"}, Outline{1, 2, 0, 0}},
		{Attribute{Value: "1, 2, 3, 4", Type: Func, Function: "bounds"}, Boundary{1, 2, 3, 4}},
	}

	for i, sample := range samples {
		v, e := sample.a.Resolve(funcs)
		if e != nil {
			t.Errorf("sample #%d: got error: %s", i, e.Error())
			continue
		}
		if v != sample.expected {
			t.Errorf("sample #%d: expecting %#v, got %#v", i, sample.expected, v)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	funcs := DefaultFunctions()
	samples := []struct {
		a    Attribute
		code int
	}{
		{Attribute{Value: "1.5", Type: Int}, BadValueError},
		{Attribute{Value: "x", Type: Float}, BadValueError},
		{Attribute{Value: "1, 2", Type: Func, Function: "rgb"}, BadValueError},
		{Attribute{Value: "300, 0, 0", Type: Func, Function: "rgb"}, BadValueError},
		{Attribute{Value: "1, 2, 3, 4, 5", Type: Func, Function: "padding"}, BadValueError},
		{Attribute{Value: "wide", Type: Func, Function: "outline"}, BadValueError},
		{Attribute{Value: "1", Type: Func, Function: "hsl"}, UnknownFunctionError},
	}

	for _, sample := range samples {
		_, e := sample.a.Resolve(funcs)
		test.ExpectErrorCode(t, sample.code, e)
	}
}

func TestLookup(t *testing.T) {
	src := `[style]
a {
  width: 1;
  height: 2;
}
a {
  width: 3;
}
a@hover {
  color: rgb(1, 2, 3);
  broken: hsl(1);
}`
	sheet, e := Parse([]byte(src))
	test.ExpectNoError(t, e)

	values, e := sheet.Lookup(DefaultFunctions())
	test.Assert(t, e != nil, "expecting error")
	test.Assert(t, strings.Contains(e.Error(), "hsl"), "wrong error: %s", e.Error())

	def := values["a"][DefaultEvent]
	test.ExpectInt(t, 1, len(def))
	test.Expect(t, def["width"] == int64(3), 3, def["width"])
	test.Expect(t, values["a"]["hover"]["color"] == Color{1, 2, 3, 255}, Color{1, 2, 3, 255}, values["a"]["hover"]["color"])
	_, found := values["a"]["hover"]["broken"]
	test.ExpectBool(t, false, found)
}

func TestParseErrors(t *testing.T) {
	_, e := Parse([]byte("[template]\na"))
	test.ExpectErrorCode(t, StructureError, e)

	_, e = Parse([]byte("[style]\na {"))
	test.Assert(t, e != nil, "expecting syntax error")
}

func TestBuildWrongNode(t *testing.T) {
	_, e := Build(nil, nil)
	test.ExpectErrorCode(t, StructureError, e)
}

func TestParseNamed(t *testing.T) {
	_, e := ParseNamed("theme.hml", []byte("[style]\na {"))
	test.Assert(t, e != nil && strings.Contains(e.Error(), "theme.hml"), "expecting source name in error, got %v", e)
}
