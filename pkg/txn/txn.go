// Package txn carries ambient transaction identity for connection sharing.
//
// A Snapshot is a read-only capture of the transaction a caller is running
// inside, taken at the moment a connection is acquired. It is only ever used
// to derive a sharing scope; the transaction's lifecycle is never managed
// here. Callers pass the snapshot explicitly into acquire calls instead of
// relying on any implicit ambient state.
package txn

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot describes the identity of an ambient transaction.
//
// LocalID is the transaction's local identifier. DistributedID is set when
// the transaction also participates in a distributed coordinator and is
// uuid.Nil otherwise. CreatedAt is the capture time and serves as a key
// fallback when no local identifier is available.
type Snapshot struct {
	LocalID       string
	DistributedID uuid.UUID
	CreatedAt     time.Time
}

// NewSnapshot captures a transaction with a local identifier only.
func NewSnapshot(localID string) *Snapshot {
	return &Snapshot{
		LocalID:   localID,
		CreatedAt: time.Now(),
	}
}

// NewDistributedSnapshot captures a transaction enlisted in a distributed
// coordinator.
func NewDistributedSnapshot(localID string, distributedID uuid.UUID) *Snapshot {
	return &Snapshot{
		LocalID:       localID,
		DistributedID: distributedID,
		CreatedAt:     time.Now(),
	}
}

// HasLocalID reports whether the snapshot carries a local identifier.
func (s *Snapshot) HasLocalID() bool {
	return s != nil && s.LocalID != ""
}

// IsDistributed reports whether the snapshot carries a distributed
// identifier.
func (s *Snapshot) IsDistributed() bool {
	return s != nil && s.DistributedID != uuid.Nil
}
