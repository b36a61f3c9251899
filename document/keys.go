package document

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// KeyGen produces fresh block keys.
type KeyGen func() BlockKey

// RandomKeys returns short random keys derived from a UUIDv4.
func RandomKeys() KeyGen {
	return func() BlockKey {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		return BlockKey(id[:8])
	}
}

// SequentialKeys returns a generator yielding prefix0, prefix1, ... It is
// safe for concurrent use.
func SequentialKeys(prefix string) KeyGen {
	var n atomic.Uint64
	return func() BlockKey {
		return BlockKey(prefix + strconv.FormatUint(n.Add(1)-1, 10))
	}
}
