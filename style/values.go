package style

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/skinnyjames/hokusai-pocket"
)

// Function converts a function argument to a value.
type Function func(arg string) (any, error)

// Functions maps function names to constructors.
type Functions map[string]Function

// DefaultFunctions returns constructors for rgb, padding, outline, and bounds.
func DefaultFunctions() Functions {
	return Functions{
		"rgb": func(arg string) (any, error) {
			return ParseColor(arg)
		},
		"padding": func(arg string) (any, error) {
			b, e := parseBox(arg)
			return Padding(b), e
		},
		"outline": func(arg string) (any, error) {
			b, e := parseBox(arg)
			return Outline(b), e
		},
		"bounds": func(arg string) (any, error) {
			b, e := parseBox(arg)
			return Boundary(b), e
		},
	}
}

// Color components are in 0..255 range.
type Color struct {
	R, G, B, A uint8
}

// Box holds edge sizes.
type Box struct {
	Top, Right, Bottom, Left float64
}

type (
	Padding  Box
	Outline  Box
	Boundary Box
)

func badValue(a *Attribute, msg string) *pocket.Error {
	return pocket.FormatError(BadValueError, "bad %s value %q of %q: %s", a.Type, a.Value, a.Name, msg)
}

// Int returns value of Int attribute.
func (a *Attribute) Int() (int64, error) {
	v, e := strconv.ParseInt(strings.TrimSpace(a.Value), 10, 64)
	if e != nil {
		return 0, badValue(a, "not an integer")
	}
	return v, nil
}

// Float returns value of Float or Int attribute.
func (a *Attribute) Float() (float64, error) {
	v, e := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
	if e != nil {
		return 0, badValue(a, "not a number")
	}
	return v, nil
}

// Bool is true for "true" and "t" values.
func (a *Attribute) Bool() bool {
	return a.Value == "true" || a.Value == "t"
}

// Resolve converts attribute value according to its type,
// function values are constructed using funcs.
func (a *Attribute) Resolve(funcs Functions) (any, error) {
	switch a.Type {
	case Int:
		return a.Int()
	case Float:
		return a.Float()
	case Bool:
		return a.Bool(), nil
	case String:
		return a.Value, nil
	case Func:
		f := funcs[a.Function]
		if f == nil {
			return nil, pocket.FormatError(UnknownFunctionError, "unknown style function %q in %q", a.Function, a.Name)
		}
		v, e := f(a.Value)
		if e != nil {
			return nil, pocket.FormatError(BadValueError, "%s(%s) in %q: %s", a.Function, a.Value, a.Name, e.Error())
		}
		return v, nil
	}
	return nil, pocket.FormatError(BadValueError, "unknown type of %q", a.Name)
}

// Values maps attribute names to resolved values.
type Values map[string]any

// Lookup resolves sheet as block name -> event name -> attribute values.
// A block replaces values of a previous block with the same name and event.
// All resolution errors are collected, failed attributes are omitted.
func (s *Sheet) Lookup(funcs Functions) (map[string]map[string]Values, error) {
	var errs *multierror.Error
	result := make(map[string]map[string]Values)
	for _, b := range s.Blocks {
		events := result[b.Name]
		if events == nil {
			events = make(map[string]Values)
			result[b.Name] = events
		}

		values := make(Values, len(b.Attributes))
		for _, a := range b.Attributes {
			v, e := a.Resolve(funcs)
			if e != nil {
				errs = multierror.Append(errs, e)
				continue
			}
			values[a.Name] = v
		}
		events[b.EventName()] = values
	}
	return result, errs.ErrorOrNil()
}

func splitList(arg string) []string {
	parts := strings.Split(arg, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParseColor parses "r, g, b" or "r, g, b, a", alpha defaults to 255.
func ParseColor(arg string) (Color, error) {
	parts := splitList(arg)
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, pocket.FormatError(BadValueError, "expecting 3 or 4 color components, got %q", arg)
	}

	c := []uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, e := strconv.ParseUint(p, 10, 8)
		if e != nil {
			return Color{}, pocket.FormatError(BadValueError, "bad color component %q", p)
		}
		c[i] = uint8(v)
	}
	return Color{c[0], c[1], c[2], c[3]}, nil
}

// parseBox parses a single size for all edges or up to 4 comma separated sizes,
// missing edges are 0.
func parseBox(arg string) (Box, error) {
	parts := splitList(arg)
	if len(parts) > 4 {
		return Box{}, pocket.FormatError(BadValueError, "expecting up to 4 sizes, got %q", arg)
	}

	sizes := make([]float64, 4)
	for i, p := range parts {
		v, e := strconv.ParseFloat(p, 64)
		if e != nil {
			return Box{}, pocket.FormatError(BadValueError, "bad size %q", p)
		}
		sizes[i] = v
	}
	if len(parts) == 1 {
		sizes[1], sizes[2], sizes[3] = sizes[0], sizes[0], sizes[0]
	}
	return Box{sizes[0], sizes[1], sizes[2], sizes[3]}, nil
}
