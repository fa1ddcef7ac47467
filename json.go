package jsonnode

import (
	"sync"
	"sync/atomic"
)

var (
	defaultProcessor   atomic.Pointer[Processor]
	defaultProcessorMu sync.Mutex
)

// getDefaultProcessor returns the processor behind the package-level
// functions, creating it on first use or after a shutdown.
func getDefaultProcessor() *Processor {
	if p := defaultProcessor.Load(); p != nil && !p.IsClosed() {
		return p
	}

	defaultProcessorMu.Lock()
	defer defaultProcessorMu.Unlock()

	if p := defaultProcessor.Load(); p != nil && !p.IsClosed() {
		return p
	}

	p := New()
	defaultProcessor.Store(p)
	return p
}

// SetGlobalProcessor sets a custom global processor (thread-safe)
func SetGlobalProcessor(processor *Processor) {
	if processor == nil {
		return
	}

	defaultProcessorMu.Lock()
	defer defaultProcessorMu.Unlock()

	if old := defaultProcessor.Swap(processor); old != nil && old != processor {
		old.Close()
	}
}

// ShutdownGlobalProcessor shuts down the global processor
func ShutdownGlobalProcessor() {
	defaultProcessorMu.Lock()
	defer defaultProcessorMu.Unlock()

	if old := defaultProcessor.Swap(nil); old != nil {
		old.Close()
	}
}
