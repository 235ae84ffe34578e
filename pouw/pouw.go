// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pouw locates and validates the proof-of-useful-work commitment
// embedded in a block's coinbase transaction, and offers a standalone
// predicate workers and auditors use to check a useful-work solution
// against a target difficulty independent of any particular block.
package pouw

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/txscript/v4"
	"github.com/decred/dcrd/wire"
	"github.com/decred/slog"
)

// log is the package-level logger, following the teacher's per-subsystem
// logging convention. It defaults to discarding everything until a caller
// installs a real backend via UseLogger.
var log = slog.Disabled

// UseLogger installs logger as this package's logger, following the
// teacher's per-subsystem wiring; cmd/shuriumd calls this once at start
// with a logger obtained from internal/consensuslog.
func UseLogger(logger slog.Logger) { log = logger }

// CommitmentMagic is the 4-byte prefix that marks a PoUW commitment,
// "SHRW" in ASCII.
var CommitmentMagic = [4]byte{0x53, 0x48, 0x52, 0x57}

// CommitmentSize is the length in bytes of the hash that follows the magic.
const CommitmentSize = 32

// minByteTransitions is the minimum number of adjacent-byte transitions a
// commitment hash must exhibit to be accepted; this rejects commitments
// that are a run of a single repeated byte.
const minByteTransitions = 8

// maxPushOpcode is the largest single-byte data-push opcode (OP_DATA_75)
// that may sit between OP_RETURN and the commitment magic in an output
// script.
const maxPushOpcode = 75

var (
	// ErrNoCommitment indicates the coinbase carries no PoUW commitment
	// and the network does not mark one optional at this height.
	ErrNoCommitment = errors.New("pouw: no commitment present and network requires one")

	// ErrZeroCommitment indicates the commitment hash is all-zero.
	ErrZeroCommitment = errors.New("pouw: commitment is all-zero")

	// ErrInsufficientEntropy indicates the commitment has fewer than
	// minByteTransitions adjacent-byte transitions.
	ErrInsufficientEntropy = errors.New("pouw: commitment has insufficient byte transitions")

	// ErrMatchesPrevHash indicates the commitment is byte-identical to
	// the previous block's hash.
	ErrMatchesPrevHash = errors.New("pouw: commitment equals previous block hash")

	// ErrUnboundToChain indicates the commitment's XOR binding against
	// the previous block hash is degenerate (zero or all-ones).
	ErrUnboundToChain = errors.New("pouw: commitment not bound to chain position")
)

// ExtractCommitment scans a coinbase transaction for a PoUW commitment,
// first in the first input's signature script, then in each output's
// public-key script. It returns the first 32-byte commitment hash found,
// or nil if none is present.
func ExtractCommitment(coinbase *wire.MsgTx) *chainhash.Hash {
	if coinbase == nil {
		return nil
	}

	if len(coinbase.TxIn) > 0 {
		if h := scanForMagic(coinbase.TxIn[0].SignatureScript); h != nil {
			return h
		}
	}

	for _, out := range coinbase.TxOut {
		if h := extractFromOutputScript(out.PkScript); h != nil {
			return h
		}
	}

	return nil
}

// scanForMagic scans script byte by byte for CommitmentMagic followed by
// at least CommitmentSize bytes, returning the hash immediately following
// the first match.
func scanForMagic(script []byte) *chainhash.Hash {
	magicLen := len(CommitmentMagic)
	for i := 0; i+magicLen+CommitmentSize <= len(script); i++ {
		if bytes.Equal(script[i:i+magicLen], CommitmentMagic[:]) {
			var h chainhash.Hash
			copy(h[:], script[i+magicLen:i+magicLen+CommitmentSize])
			return &h
		}
	}
	return nil
}

// extractFromOutputScript recognizes OP_RETURN, optionally followed by a
// single direct data-push opcode (any length from 1 to maxPushOpcode), then
// the magic and payload. It falls back to a byte scan of the whole script so a
// push opcode that doesn't exactly match canonical encoding still yields
// the commitment if present.
func extractFromOutputScript(script []byte) *chainhash.Hash {
	if len(script) == 0 || script[0] != txscript.OP_RETURN {
		return nil
	}

	rest := script[1:]
	if len(rest) > 0 && rest[0] > 0 && int(rest[0]) <= maxPushOpcode {
		rest = rest[1:]
	}

	if h := scanForMagic(rest); h != nil {
		return h
	}
	return scanForMagic(script)
}

// ValidateCommitment implements the pre-marketplace validation rules of
// §4.D: the genesis block is exempt; a missing commitment is only valid
// when the network marks PoUW optional; otherwise the commitment must be
// non-zero, exhibit enough byte transitions, differ from the previous
// block hash, and XOR-bind to the previous block hash.
//
// isGenesis should be true only for the block whose previous hash is the
// all-zero hash. pouwOptional should come from the network's PoUWOptional
// flag (or, post-activation-height, false) rather than from a retargeting
// flag — see the design notes on overloading fPowNoRetargeting.
func ValidateCommitment(commitment *chainhash.Hash, prevHash *chainhash.Hash, isGenesis bool, pouwOptional bool) error {
	if isGenesis {
		return nil
	}

	if commitment == nil {
		if pouwOptional {
			return nil
		}
		log.Debugf("rejecting block: no PoUW commitment present and PoUW is not optional")
		return ErrNoCommitment
	}

	var zero chainhash.Hash
	if *commitment == zero {
		log.Debugf("rejecting PoUW commitment: all-zero")
		return ErrZeroCommitment
	}

	if countByteTransitions(commitment[:]) < minByteTransitions {
		log.Debugf("rejecting PoUW commitment %s: insufficient byte transitions", commitment)
		return ErrInsufficientEntropy
	}

	if prevHash != nil && *commitment == *prevHash {
		log.Debugf("rejecting PoUW commitment: matches previous block hash")
		return ErrMatchesPrevHash
	}

	if prevHash != nil {
		var x uint32
		for i := 0; i < 4; i++ {
			x |= uint32(commitment[i]^prevHash[i]) << (8 * uint(i))
		}
		if x == 0 || x == 0xFFFFFFFF {
			log.Debugf("rejecting PoUW commitment %s: not bound to chain position", commitment)
			return ErrUnboundToChain
		}
	}

	return nil
}

// countByteTransitions counts the number of indices i>0 where b[i] != b[i-1].
func countByteTransitions(b []byte) int {
	count := 0
	for i := 1; i < len(b); i++ {
		if b[i] != b[i-1] {
			count++
		}
	}
	return count
}

// VerifyPoUWSolution is a standalone predicate, independent of any block,
// checking whether solution satisfies a proof-of-useful-work challenge
// against problemHash at the given difficulty: SHA256(problemHash ||
// solution) must have at least difficulty leading zero bits.
//
// difficulty == 0 is rejected as misconfiguration rather than treated as
// "trivially satisfied", per §4.D′.
func VerifyPoUWSolution(problemHash *chainhash.Hash, solution []byte, difficulty uint32) bool {
	if difficulty == 0 {
		return false
	}
	if len(solution) < 32 {
		return false
	}
	if isAllZero(solution) {
		return false
	}
	if problemHash == nil {
		return false
	}

	h := sha256.New()
	h.Write(problemHash[:])
	h.Write(solution)
	sum := h.Sum(nil)

	return leadingZeroBits(sum) >= difficulty
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// leadingZeroBits counts the number of leading zero bits in b, treating b
// as a big-endian bit string.
func leadingZeroBits(b []byte) uint32 {
	var n uint32
	for _, byteVal := range b {
		if byteVal == 0 {
			n += 8
			continue
		}
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if byteVal&mask != 0 {
				return n
			}
			n++
		}
	}
	return n
}
