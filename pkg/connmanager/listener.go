package connmanager

import "github.com/ajitpratap0/connshare/pkg/provider"

// LifecycleListener observes connection lifecycle events. Listeners are
// registered on the manager, independent of acquire/release call sites, and
// are invoked synchronously in registration order. Attempt counters are
// zero-based.
//
// Open-path listener panics propagate to the acquiring caller. OnCloseError
// is the exception: it runs on cleanup paths that must not fail.
type LifecycleListener interface {
	// OnOpening fires before each native open attempt.
	OnOpening(identity provider.Identity)
	// OnOpened fires after a successful open, with the attempt that
	// succeeded.
	OnOpened(identity provider.Identity, attempt int)
	// OnOpenError fires after a failed attempt, and once more with the
	// aggregate error when the retry budget is exhausted.
	OnOpenError(identity provider.Identity, attempt int, err error)
	// OnClosing fires before the native handle is closed.
	OnClosing(identity provider.Identity)
	// OnClosed fires after a successful close.
	OnClosed(identity provider.Identity)
	// OnCloseError fires when the close fails; the error is then
	// suppressed by the manager.
	OnCloseError(identity provider.Identity, err error)
}

// BaseListener is a no-op LifecycleListener for embedding, so listeners
// only implement the events they care about.
type BaseListener struct{}

func (BaseListener) OnOpening(provider.Identity)               {}
func (BaseListener) OnOpened(provider.Identity, int)           {}
func (BaseListener) OnOpenError(provider.Identity, int, error) {}
func (BaseListener) OnClosing(provider.Identity)               {}
func (BaseListener) OnClosed(provider.Identity)                {}
func (BaseListener) OnCloseError(provider.Identity, error)     {}
