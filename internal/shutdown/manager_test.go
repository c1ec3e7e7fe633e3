package shutdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"student-records/internal/logger"
)

func TestShutdownReverseOrderOnce(t *testing.T) {
	m := NewManager(logger.NoOpLogger{})

	var order []string
	m.Register("database", ShutdownFunc(func() { order = append(order, "database") }))
	m.Register("window", ShutdownFunc(func() { order = append(order, "window") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"window", "database"}, order)
	assert.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("Done channel not closed")
	}
}

func TestShutdownTimeout(t *testing.T) {
	m := NewManager(logger.NoOpLogger{})
	m.timeout = 20 * time.Millisecond

	var released atomic.Bool
	block := make(chan struct{})
	defer close(block)

	m.Register("fast", ShutdownFunc(func() { released.Store(true) }))
	m.Register("stuck", ShutdownFunc(func() { <-block }))

	start := time.Now()
	m.Shutdown()

	assert.True(t, released.Load(), "later components still run after a timeout")
	assert.Less(t, time.Since(start), 2*time.Second)
}
