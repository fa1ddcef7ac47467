package jsonnode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelper provides utilities for testing document operations
type TestHelper struct {
	t      *testing.T
	assert *assert.Assertions
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t, assert: assert.New(t)}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.Equal(expected, actual, msgAndArgs...)
}

// AssertNotEqual checks if two values are not equal
func (h *TestHelper) AssertNotEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.NotEqual(expected, actual, msgAndArgs...)
}

// AssertNoError checks that error is nil
func (h *TestHelper) AssertNoError(err error, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.NoError(err, msgAndArgs...)
}

// AssertError checks that error is not nil
func (h *TestHelper) AssertError(err error, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.Error(err, msgAndArgs...)
}

// AssertErrorIs checks that err matches target in its chain
func (h *TestHelper) AssertErrorIs(err, target error, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.ErrorIs(err, target, msgAndArgs...)
}

// AssertErrorContains checks that error contains specific text
func (h *TestHelper) AssertErrorContains(err error, contains string, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.ErrorContains(err, contains, msgAndArgs...)
}

// AssertPanic checks that function panics
func (h *TestHelper) AssertPanic(fn func(), msgAndArgs ...any) {
	h.t.Helper()
	h.assert.Panics(fn, msgAndArgs...)
}

// AssertNoPanic checks that function does not panic
func (h *TestHelper) AssertNoPanic(fn func(), msgAndArgs ...any) {
	h.t.Helper()
	h.assert.NotPanics(fn, msgAndArgs...)
}

// AssertTrue checks that condition is true
func (h *TestHelper) AssertTrue(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.True(condition, msgAndArgs...)
}

// AssertFalse checks that condition is false
func (h *TestHelper) AssertFalse(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.False(condition, msgAndArgs...)
}

// AssertNotNil checks that value is not nil
func (h *TestHelper) AssertNotNil(value any, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.NotNil(value, msgAndArgs...)
}

// AssertNil checks that value is nil
func (h *TestHelper) AssertNil(value any, msgAndArgs ...any) {
	h.t.Helper()
	h.assert.Nil(value, msgAndArgs...)
}

// AssertSameTree compares the native form of two trees and reports a diff
func (h *TestHelper) AssertSameTree(expected, actual *Node, msgAndArgs ...any) {
	h.t.Helper()
	if diff := cmp.Diff(expected.Interface(), actual.Interface()); diff != "" {
		h.assert.Fail("trees differ (-want +got):\n"+diff, msgAndArgs...)
	}
}

// MustParse parses text or stops the test
func (h *TestHelper) MustParse(text string) *Node {
	h.t.Helper()
	n, err := ParseWithConfig(text, DefaultConfig())
	require.NoError(h.t, err, "parse %q", text)
	return n
}

// TestDataGenerator builds documents for tests and benchmarks
type TestDataGenerator struct{}

// NewTestDataGenerator creates a new generator
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{}
}

// GenerateComplexJSON returns a nested document exercising every kind
func (g *TestDataGenerator) GenerateComplexJSON() string {
	return `{
		"users": [
			{"id": 1, "name": "Alice", "email": "alice@example.com", "active": true, "score": 91.5, "tags": ["admin", "dev"]},
			{"id": 2, "name": "Bob", "email": "bob@example.com", "active": false, "score": 78.25, "tags": []},
			{"id": 3, "name": "Ç€ñ", "email": null, "active": true, "score": -0.5, "tags": ["ops"]}
		],
		"meta": {"total": 3, "page": {"size": 25, "index": 0}, "generated": "2024-01-01T00:00:00Z"},
		"escapes": "tab\tquote\"slash\\newline\n"
	}`
}
