// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import (
	"encoding/binary"
	"errors"
)

// distributorFormatVersion is the only version this package writes or
// accepts.
const distributorFormatVersion = 0x01

// Sanity caps from §6: a larger declared count is treated as malformed
// input rather than an attempt to read it.
const (
	maxPoolCount      = 10_000
	maxNullifierCount = 1_000_000
)

// Errors returned by Deserialize for structurally malformed input. Per §7
// these are structural errors: they abort the load, they never leave a
// distributor in a partially-populated state.
var (
	ErrBadVersion       = errors.New("ubi: unsupported distributor format version")
	ErrTruncated        = errors.New("ubi: distributor snapshot truncated")
	ErrTooManyPools     = errors.New("ubi: declared pool count exceeds sanity cap")
	ErrTooManyNullifiers = errors.New("ubi: declared nullifier count exceeds sanity cap")
)

// Serialize encodes the distributor's full state in the canonical
// persistent format from §6.
func (d *UBIDistributor) Serialize() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf := make([]byte, 0, 13+len(d.pools)*41)

	buf = append(buf, distributorFormatVersion)
	buf = appendUint64(buf, d.currentEpoch)
	buf = appendUint32(buf, uint32(len(d.pools)))

	for _, pool := range d.pools {
		buf = appendUint64(buf, pool.Epoch)
		buf = appendInt64(buf, pool.TotalPool)
		buf = appendUint32(buf, pool.EligibleCount)
		buf = appendInt64(buf, pool.AmountPerPerson)
		buf = appendInt64(buf, pool.AmountClaimed)
		buf = appendUint32(buf, pool.ClaimCount)

		isFinalized := byte(0)
		if pool.IsFinalized {
			isFinalized = 1
		}
		buf = append(buf, isFinalized)

		buf = appendInt32(buf, pool.EndHeight)
		buf = appendInt32(buf, pool.ClaimDeadline)

		nullifiers := pool.Nullifiers()
		buf = appendUint32(buf, uint32(len(nullifiers)))
		for _, n := range nullifiers {
			buf = append(buf, n[:]...)
		}
	}

	return buf
}

// DeserializeDistributor decodes a distributor snapshot written by
// Serialize, rejecting malformed input per §6's sanity caps and §7's
// fatal-on-inconsistency rule: any structural problem aborts the entire
// load rather than returning a partially populated distributor.
func DeserializeDistributor(buf []byte, params Params) (*UBIDistributor, error) {
	r := &byteReader{buf: buf}

	version, ok := r.readByte()
	if !ok {
		return nil, ErrTruncated
	}
	if version != distributorFormatVersion {
		return nil, ErrBadVersion
	}

	currentEpoch, ok := r.readUint64()
	if !ok {
		return nil, ErrTruncated
	}

	poolCount, ok := r.readUint32()
	if !ok {
		return nil, ErrTruncated
	}
	if poolCount > maxPoolCount {
		return nil, ErrTooManyPools
	}

	d := NewUBIDistributor(params)
	d.currentEpoch = currentEpoch

	for i := uint32(0); i < poolCount; i++ {
		pool, err := readPool(r)
		if err != nil {
			return nil, err
		}
		d.pools[pool.Epoch] = pool
	}

	return d, nil
}

func readPool(r *byteReader) (*EpochUBIPool, error) {
	epoch, ok := r.readUint64()
	if !ok {
		return nil, ErrTruncated
	}
	totalPool, ok := r.readInt64()
	if !ok {
		return nil, ErrTruncated
	}
	eligibleCount, ok := r.readUint32()
	if !ok {
		return nil, ErrTruncated
	}
	amountPerPerson, ok := r.readInt64()
	if !ok {
		return nil, ErrTruncated
	}
	amountClaimed, ok := r.readInt64()
	if !ok {
		return nil, ErrTruncated
	}
	claimCount, ok := r.readUint32()
	if !ok {
		return nil, ErrTruncated
	}
	isFinalizedByte, ok := r.readByte()
	if !ok {
		return nil, ErrTruncated
	}
	endHeight, ok := r.readInt32()
	if !ok {
		return nil, ErrTruncated
	}
	claimDeadline, ok := r.readInt32()
	if !ok {
		return nil, ErrTruncated
	}
	nullifierCount, ok := r.readUint32()
	if !ok {
		return nil, ErrTruncated
	}
	if nullifierCount > maxNullifierCount {
		return nil, ErrTooManyNullifiers
	}

	pool := NewEpochUBIPool(epoch)
	pool.TotalPool = totalPool
	pool.EligibleCount = eligibleCount
	pool.AmountPerPerson = amountPerPerson
	pool.AmountClaimed = amountClaimed
	pool.ClaimCount = claimCount
	pool.IsFinalized = isFinalizedByte != 0
	pool.EndHeight = endHeight
	pool.ClaimDeadline = claimDeadline

	for i := uint32(0); i < nullifierCount; i++ {
		h, ok := r.readHash()
		if !ok {
			return nil, ErrTruncated
		}
		pool.addNullifier(h)
	}

	return pool, nil
}

// byteReader is a minimal forward-only cursor over a byte slice, used so
// Deserialize can check bounds once per field instead of repeating
// len(buf) >= offset+n guards inline.
type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) readByte() (byte, bool) {
	if r.pos+1 > len(r.buf) {
		return 0, false
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func (r *byteReader) readUint32() (uint32, bool) {
	if r.pos+4 > len(r.buf) {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, true
}

func (r *byteReader) readInt32() (int32, bool) {
	v, ok := r.readUint32()
	return int32(v), ok
}

func (r *byteReader) readUint64() (uint64, bool) {
	if r.pos+8 > len(r.buf) {
		return 0, false
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v, true
}

func (r *byteReader) readInt64() (int64, bool) {
	v, ok := r.readUint64()
	return int64(v), ok
}

func (r *byteReader) readHash() ([32]byte, bool) {
	var h [32]byte
	if r.pos+32 > len(r.buf) {
		return h, false
	}
	copy(h[:], r.buf[r.pos:r.pos+32])
	r.pos += 32
	return h, true
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendInt32(buf []byte, v int32) []byte {
	return appendUint32(buf, uint32(v))
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendInt64(buf []byte, v int64) []byte {
	return appendUint64(buf, uint64(v))
}
