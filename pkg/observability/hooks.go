// Package observability provides hooks for instrumenting notebook patching.
//
// The notebook package reports events through the hooks registered here and
// does not know where they end up. The default hooks do nothing; main
// registers an implementation (nbkernel logs the events at debug level).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNotebookHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Notebook().OnPatchStart(ctx, path, lang)
//	// ... load, patch, save ...
//	observability.Notebook().OnPatchComplete(ctx, path, lang, changed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Notebook Hooks
// =============================================================================

// NotebookHooks receives events from the metadata patcher.
type NotebookHooks interface {
	// OnPatchStart is called after the language has been resolved and
	// before the notebook is read.
	OnPatchStart(ctx context.Context, path, lang string)

	// OnPatchComplete is called once per patch, successful or not.
	OnPatchComplete(ctx context.Context, path, lang string, changed bool, duration time.Duration, err error)

	// OnWrite records the encoded document being written. dest is the
	// notebook path, or "-" when the document went to an output stream.
	OnWrite(ctx context.Context, dest string, size int)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopNotebookHooks is a no-op implementation of NotebookHooks.
type NoopNotebookHooks struct{}

func (NoopNotebookHooks) OnPatchStart(context.Context, string, string) {}
func (NoopNotebookHooks) OnPatchComplete(context.Context, string, string, bool, time.Duration, error) {
}
func (NoopNotebookHooks) OnWrite(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	notebookHooks NotebookHooks = NoopNotebookHooks{}
	hooksMu       sync.RWMutex
)

// SetNotebookHooks registers custom notebook hooks. A nil h is ignored.
func SetNotebookHooks(h NotebookHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		notebookHooks = h
	}
}

// Notebook returns the registered notebook hooks.
func Notebook() NotebookHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return notebookHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	notebookHooks = NoopNotebookHooks{}
}
