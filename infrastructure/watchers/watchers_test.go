package watchers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchers(t *testing.T) {
	t.Run("not shutting down before a signal", func(t *testing.T) {
		watcher := InitializeShutdownWatcher()
		watcher.Start()
		assert.False(t, watcher.IsShuttingDown(), "expected to not be shutting down")
	})

	t.Run("shutting down after a signal", func(t *testing.T) {
		watcher := InitializeShutdownWatcher()
		watcher.Start()
		watcher.Trigger()
		select {
		case <-watcher.Done():
		case <-time.After(time.Second):
			t.Fatal("expected Done to be closed after Trigger")
		}
		assert.True(t, watcher.IsShuttingDown())
	})
}
