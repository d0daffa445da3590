package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

func TestSafeGo_RunsAndSignals(t *testing.T) {
	ran := false
	done := SafeGo(logger.NewNop(), "work", func() { ran = true })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
	assert.True(t, ran)
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := SafeGo(logger.NewNop(), "boom", func() { panic("boom") })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking goroutine did not finish")
	}
}

func TestDetached_OutlivesParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	var childErr error
	var hasDeadline bool
	done := Detached(parent, logger.NewNop(), "notice", time.Minute, func(ctx context.Context) {
		childErr = ctx.Err()
		_, hasDeadline = ctx.Deadline()
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("detached goroutine did not finish")
	}
	assert.NoError(t, childErr)
	assert.True(t, hasDeadline)
}
