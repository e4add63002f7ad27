//go:build !debug

package debug

// AssertionsEnabled is true in builds with the debug tag.
const AssertionsEnabled = false

// Assert is a no-op without the debug build tag.
func Assert(cond bool, format string, args ...any) {}
