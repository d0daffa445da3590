// Package goroutine launches background work that must never take the
// process down.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine. A panic is logged with its stack. The
// returned channel is closed once fn has returned or panicked.
func SafeGo(log logger.Interface, name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer recoverTo(log, name)
		fn()
	}()
	return done
}

// Detached runs fn in the background with a context that keeps the values of
// parent but outlives its cancellation, bounded by timeout.
func Detached(parent context.Context, log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context)) <-chan struct{} {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), timeout)
	return SafeGo(log, name, func() {
		defer cancel()
		fn(ctx)
	})
}

func recoverTo(log logger.Interface, name string) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorw("goroutine panicked",
		"goroutine", name,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
}
