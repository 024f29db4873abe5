package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"fortio.org/safecast"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// cacheKey: H(schema || options || content hash). Any option that changes the
// output or the diagnostics must be part of the key.
func cacheKey(content [32]byte, opts Options) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	writeString := func(s string) {
		n, err := safecast.Conv[uint32](len(s))
		if err != nil {
			n = math.MaxUint32
		}
		binary.LittleEndian.PutUint32(buf[:4], n)
		_, _ = h.Write(buf[:4])
		_, _ = h.Write([]byte(s))
	}
	writeString(opts.Normalize.HeaderPrefix)
	writeString(opts.Normalize.SignaturePrefix)
	flags := byte(0)
	if opts.WarnUnresolved {
		flags |= 1
	}
	if opts.Explain {
		flags |= 2
	}
	_, _ = h.Write([]byte{flags})
	maxDiag, err := safecast.Conv[uint64](opts.maxDiagnostics())
	if err != nil {
		maxDiag = 0
	}
	binary.LittleEndian.PutUint64(buf[:], maxDiag)
	_, _ = h.Write(buf[:])
	_, _ = h.Write(content[:])

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
