package txn

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotLocal(t *testing.T) {
	snap := NewSnapshot("tx-1234")

	assert.True(t, snap.HasLocalID())
	assert.False(t, snap.IsDistributed())
	assert.False(t, snap.CreatedAt.IsZero())
}

func TestSnapshotDistributed(t *testing.T) {
	snap := NewDistributedSnapshot("tx-1234", uuid.New())

	assert.True(t, snap.HasLocalID())
	assert.True(t, snap.IsDistributed())
}

func TestSnapshotNilSafety(t *testing.T) {
	var snap *Snapshot

	assert.False(t, snap.HasLocalID())
	assert.False(t, snap.IsDistributed())
}

func TestSnapshotWithoutLocalID(t *testing.T) {
	snap := &Snapshot{}
	assert.False(t, snap.HasLocalID())
}
