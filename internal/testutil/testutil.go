// Package testutil provides test helpers for recipeideas tests.
//
// The package is organized into focused files:
//   - assert.go: assertion helpers (MustNoErr, AssertStrings, etc.)
//   - builders.go: MealDetail and MealSummary builders
package testutil
