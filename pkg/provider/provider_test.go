package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/connshare/pkg/errors"
)

type nopHandle struct{ text string }

func (h *nopHandle) SetConnectionText(text string) { h.text = text }
func (h *nopHandle) Open(context.Context) error    { return nil }
func (h *nopHandle) Close() error                  { return nil }

func nopFactory() Handle { return &nopHandle{} }

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register("memdb", nopFactory))

	factory, err := reg.Resolve("memdb")
	require.NoError(t, err)
	require.NotNil(t, factory)

	handle := factory()
	handle.SetConnectionText("dsn")
	require.NoError(t, handle.Open(context.Background()))
	require.NoError(t, handle.Close())
}

func TestRegistryDuplicateRejected(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register("memdb", nopFactory))
	err := reg.Register("memdb", nopFactory)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
}

func TestRegistryUnknownProvider(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve("missing")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register("zeta", nopFactory))
	require.NoError(t, reg.Register("alpha", nopFactory))
	require.NoError(t, reg.Register("mid", nopFactory))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

func TestDefaultRegistry(t *testing.T) {
	require.NoError(t, Register("provider_test_default", nopFactory))

	factory, err := Resolve("provider_test_default")
	require.NoError(t, err)
	require.NotNil(t, factory)

	assert.Contains(t, Names(), "provider_test_default")
}

func TestIdentityValid(t *testing.T) {
	assert.False(t, Identity{}.Valid())
	assert.False(t, Identity{Name: "orders"}.Valid())
	assert.False(t, Identity{Provider: "postgres"}.Valid())
	assert.True(t, Identity{Name: "orders", Provider: "postgres"}.Valid())
}
