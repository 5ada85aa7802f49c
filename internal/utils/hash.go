package utils

import (
	"hash"

	"github.com/spaolacci/murmur3"
)

// HashBytes hashes a raw byte slice with murmur3.
func HashBytes(b []byte) uint32 {
	return murmur3.Sum32(b)
}

// Digest folds a sequence of byte slices into one order-sensitive hash.
type Digest struct {
	h     hash.Hash32
	count int
}

func NewDigest() *Digest {
	return &Digest{h: murmur3.New32()}
}

// Add feeds one row into the digest.
func (d *Digest) Add(row []byte) {
	var n [4]byte
	l := len(row)
	n[0], n[1], n[2], n[3] = byte(l), byte(l>>8), byte(l>>16), byte(l>>24)
	_, _ = d.h.Write(n[:])
	_, _ = d.h.Write(row)
	d.count++
}

// Sum32 returns the running digest.
func (d *Digest) Sum32() uint32 {
	return d.h.Sum32()
}

// Count returns how many rows were added.
func (d *Digest) Count() int {
	return d.count
}
