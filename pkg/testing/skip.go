// Package testing starts the backing services used by integration tests.
package testing

import "testing"

// SkipIfShort skips container backed tests under go test -short.
func SkipIfShort(tb testing.TB) {
	tb.Helper()
	if testing.Short() {
		tb.Skip("container tests are skipped in short mode")
	}
}
