// Package provider turns provider identifiers into native connection
// handles. Providers register a Factory under a name; the connection manager
// resolves the name at open time and drives the returned Handle through its
// open/close lifecycle.
package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/logger"
	"go.uber.org/zap"
)

// Handle is an unopened native connection produced by a Factory.
//
// The manager calls SetConnectionText before Open. Close must release every
// resource the handle holds and must be safe to call exactly once after a
// successful Open.
type Handle interface {
	SetConnectionText(text string)
	Open(ctx context.Context) error
	Close() error
}

// Factory creates a fresh, unopened Handle.
type Factory func() Handle

// Registry maps provider names to handle factories.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
	logger    *zap.Logger
}

// Global registry instance
var defaultRegistry = NewRegistry()

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger.Get().With(zap.String("component", "provider_registry")),
	}
}

// Register registers a handle factory under a provider name
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.New(errors.ErrorTypeConflict, fmt.Sprintf("provider %s already registered", name))
	}

	r.factories[name] = factory
	r.logger.Info("provider registered", zap.String("name", name))
	return nil
}

// Resolve returns the factory registered under a provider name
func (r *Registry) Resolve(name string) (Factory, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.New(errors.ErrorTypeNotFound, fmt.Sprintf("provider %s not found", name))
	}

	return factory, nil
}

// Names returns the registered provider names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the process-wide registry that built-in providers
// register into.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a factory in the default registry
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// Resolve resolves a provider name in the default registry
func Resolve(name string) (Factory, error) {
	return defaultRegistry.Resolve(name)
}

// Names lists the providers registered in the default registry
func Names() []string {
	return defaultRegistry.Names()
}
