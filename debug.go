package channel

import (
	"fmt"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// debugEnabled gates the trace hook below. It mirrors the Go runtime's own
// debugChan flag (see the annotated hchan implementations this module was
// grounded on) generalized from a build-time constant into a runtime
// toggle, since this module can't recompile itself per caller.
var debugEnabled atomic.Bool

// SetDebug turns the package's trace logging on or off. Off by default and
// zero-cost when disabled; every call site below is a single atomic load
// guarding the format work.
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

// trace writes a single diagnostic line tagged with the calling goroutine's
// id when debug logging is enabled. Format and args follow fmt.Printf
// conventions.
func trace(format string, args ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	fmt.Printf("[channel g=%d] "+format+"\n", append([]interface{}{goid.Get()}, args...)...)
}
