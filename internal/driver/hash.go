package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// optionsDigest covers everything besides the document that changes a
// result: schema, default dialect, input and the check switches.
func optionsDigest(opts *Options) Digest {
	var buf [16]byte
	binary.LittleEndian.PutUint16(buf[0:], cacheSchemaVersion)
	binary.LittleEndian.PutUint32(buf[2:], uint32(opts.Lang))
	if opts.Warnings {
		buf[6] = 1
	}
	if opts.WarningsAsErrors {
		buf[7] = 1
	}
	if opts.Explain {
		buf[8] = 1
	}
	buf[9] = byte(opts.Input)
	return sha256.Sum256(buf[:])
}

// cacheKey is H(content || options || typedef documents).
func cacheKey(content Digest, opts *Options, typedefs Digest) Digest {
	return combineDigest(content, optionsDigest(opts), typedefs)
}
