package debug

import "testing"

func TestAssert(t *testing.T) {
	defer func() {
		r := recover()
		if AssertionsEnabled && r == nil {
			t.Error("Expected failed assertion to panic in debug builds")
		}
		if !AssertionsEnabled && r != nil {
			t.Errorf("Assertion panicked in release build: %v", r)
		}
	}()

	Assert(true, "never fires")
	Assert(false, "format mismatch on bus %d", 1)
}
