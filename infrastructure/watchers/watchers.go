package watchers

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ShutdownWatcher closes Done once the process receives SIGINT or SIGTERM.
type ShutdownWatcher struct {
	signalChan chan os.Signal
	done       chan struct{}
	once       sync.Once
}

func InitializeShutdownWatcher() *ShutdownWatcher {
	return &ShutdownWatcher{signalChan: make(chan os.Signal, 1), done: make(chan struct{})}
}

func (sw *ShutdownWatcher) Start() {
	signal.Notify(sw.signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sw.signalChan
		signal.Stop(sw.signalChan)
		sw.once.Do(func() { close(sw.done) })
	}()
}

// Trigger behaves as if a shutdown signal had arrived.
func (sw *ShutdownWatcher) Trigger() {
	sw.signalChan <- syscall.SIGTERM
}

func (sw *ShutdownWatcher) Done() <-chan struct{} {
	return sw.done
}

func (sw *ShutdownWatcher) IsShuttingDown() bool {
	select {
	case <-sw.done:
		return true
	default:
		return false
	}
}
