//go:build debug

package debug

import "fmt"

// AssertionsEnabled is true in builds with the debug tag.
const AssertionsEnabled = true

// Assert panics with the formatted message when cond is false. Without the
// debug build tag it compiles to nothing.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
