// Package testutil holds assertions shared by the package tests.
package testutil

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error, message string) {
	t.Helper()
	if err != nil {
		if message != "" {
			t.Fatalf("%s: %v", message, err)
		} else {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error %v, got nil", message, target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("%s: expected error %v, got %v", message, target, err)
	}
}

// AssertEqual fails the test if actual != expected.
func AssertEqual[T comparable](t *testing.T, actual, expected T, message string) {
	t.Helper()
	if actual != expected {
		if message != "" {
			t.Fatalf("%s: expected %v, got %v", message, expected, actual)
		} else {
			t.Fatalf("Expected %v, got %v", expected, actual)
		}
	}
}

// AssertContains fails the test if the slice doesn't contain the value.
func AssertContains[T comparable](t *testing.T, slice []T, value T, message string) {
	t.Helper()
	if slices.Contains(slice, value) {
		return
	}
	if message != "" {
		t.Fatalf("%s: %v not found in slice", message, value)
	} else {
		t.Fatalf("%v not found in slice", value)
	}
}

// AssertOutputContains fails the test if output doesn't contain want.
func AssertOutputContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}

// AssertOutputNotContains fails the test if output contains unwanted.
func AssertOutputNotContains(t *testing.T, output, unwanted string) {
	t.Helper()
	if strings.Contains(output, unwanted) {
		t.Fatalf("expected output not to contain %q, got:\n%s", unwanted, output)
	}
}
