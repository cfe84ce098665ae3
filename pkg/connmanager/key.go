package connmanager

import (
	"bytes"
	"encoding/hex"
	"runtime"
	"strconv"
	"strings"

	"github.com/ajitpratap0/connshare/pkg/txn"
)

const (
	// scopeSentinel stands in for an absent transaction or disabled
	// goroutine separation in cache keys.
	scopeSentinel = "-"

	// localIDSuffixLen is how much of the local transaction identifier
	// participates in the key. Truncation collisions are an accepted
	// approximation.
	localIDSuffixLen = 10

	// distributedIDSuffixLen is how much of the distributed identifier's
	// hex form participates in the key.
	distributedIDSuffixLen = 12

	// timestampKeyFormat renders the snapshot capture time with
	// millisecond precision for transactions without a local identifier.
	timestampKeyFormat = "20060102150405.000"
)

// BuildKey derives the cache key for one sharing scope: the identity name,
// the ambient transaction snapshot (nil when none), and the calling
// goroutine when separateByGoroutine is set. Two acquisitions map to the
// same key exactly when all three coordinates agree.
func BuildKey(name string, snap *txn.Snapshot, goroutineID uint64, separateByGoroutine bool) string {
	var b strings.Builder
	b.WriteString(name)

	switch {
	case snap == nil:
		b.WriteString(scopeSentinel)
	case snap.HasLocalID():
		b.WriteString(tail(snap.LocalID, localIDSuffixLen))
		if snap.IsDistributed() {
			b.WriteString("::")
			hexID := hex.EncodeToString(snap.DistributedID[:])
			b.WriteString(tail(hexID, distributedIDSuffixLen))
		}
	default:
		b.WriteString(snap.CreatedAt.Format(timestampKeyFormat))
	}

	if separateByGoroutine {
		b.WriteString(strconv.FormatUint(goroutineID, 10))
	} else {
		b.WriteString(scopeSentinel)
	}

	return b.String()
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

var goroutinePrefix = []byte("goroutine ")

// currentGoroutineID extracts the calling goroutine's id from the runtime
// stack header. Goroutine ids are not exposed by the runtime API, but the
// header format is stable across Go releases.
func currentGoroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	stack := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(stack, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(stack[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}
