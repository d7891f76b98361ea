// Package goroutine provides utilities for safely launching goroutines with
// panic recovery, used by internal/convert to fetch independent
// subscription sources concurrently without one panicking source taking
// the whole conversion down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/subconv/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If fn panics, the panic
// is caught and logged with its stack trace instead of crashing the
// process. Callers needing to wait for fn to finish (internal/convert's
// parallel fetch) close over a sync.WaitGroup.Done call inside fn.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
