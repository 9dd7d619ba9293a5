// Package test contains assertion helpers shared by package tests.
// All helpers stop the test on the first failed expectation.
package test

import (
	"errors"
	"slices"
	"testing"

	"github.com/skinnyjames/hokusai-pocket"
)

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(message, params...)
	}
}

// Expect fails with expected and got values unless cond holds.
func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		t.Fatalf("expecting %v, got %v", expected, got)
	}
}

func equal[T comparable](t *testing.T, format string, expected, got T) {
	t.Helper()
	if expected != got {
		t.Fatalf("expecting "+format+", got "+format, expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	equal(t, "%t", expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	equal(t, "%d", expected, got)
}

func ExpectString(t *testing.T, expected, got string) {
	t.Helper()
	equal(t, "%q", expected, got)
}

func ExpectStrings(t *testing.T, expected, got []string) {
	t.Helper()
	if !slices.Equal(expected, got) {
		t.Fatalf("expecting %q, got %q", expected, got)
	}
}

func ExpectNoError(t *testing.T, e error) {
	t.Helper()
	if e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
}

// ExpectErrorCode looks for *pocket.Error with given code in the chain of e.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	var pe *pocket.Error
	if errors.As(e, &pe) && pe.Code == expected {
		return
	}
	t.Fatalf("expecting error code %d, got %v", expected, e)
}
