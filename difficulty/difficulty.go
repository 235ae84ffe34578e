// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package difficulty implements the retarget algorithm described in §4.C:
// a fixed-interval retarget from observed timespan, with a minimum
// difficulty exception for test networks.
package difficulty

import (
	"math/big"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/slog"
	"github.com/shurium/shurium/chaincfg"
	"github.com/shurium/shurium/chainindex"
	"github.com/shurium/shurium/pow"
)

// log is the package-level logger, following the teacher's per-subsystem
// logging convention. It defaults to discarding everything until a caller
// installs a real backend via UseLogger.
var log = slog.Disabled

// UseLogger installs logger as this package's logger, following the
// teacher's per-subsystem wiring; cmd/shuriumd calls this once at start
// with a logger obtained from internal/consensuslog.
func UseLogger(logger slog.Logger) { log = logger }

// CalcNextRequiredDifficulty calculates the required difficulty for the
// block that extends prevNode, given the candidate block's timestamp.
//
// prevNode may be nil, which represents calculating the difficulty for the
// genesis block.
func CalcNextRequiredDifficulty(prevNode *chainindex.BlockIndex, newBlockTime time.Time, params *chaincfg.Params) (uint32, error) {
	// Genesis block.
	if prevNode == nil {
		return params.PowLimitBits, nil
	}

	// Networks that disable retargeting never change difficulty.
	if params.NoRetargeting {
		return prevNode.Bits, nil
	}

	next := prevNode.Height + 1
	window := params.DifficultyAdjustmentInterval

	// Not at a retarget boundary: the difficulty carries over from the
	// previous block, except for the test-network minimum-difficulty
	// exception.
	if next%window != 0 {
		if params.AllowMinDifficultyBlocks {
			maxElapsed := int64(2 * params.TargetSpacing / time.Second)
			if newBlockTime.Unix() > prevNode.Time+maxElapsed {
				log.Debugf("allowing minimum difficulty for block at height %d", next)
				return params.PowLimitBits, nil
			}

			return findLastNonMinDifficultyBits(prevNode, params), nil
		}

		return prevNode.Bits, nil
	}

	return calcRetarget(prevNode, window, params)
}

// findLastNonMinDifficultyBits walks backwards through the chain skipping
// consecutive minimum-difficulty blocks to recover the last difficulty that
// was not the result of the minimum-difficulty exception.
func findLastNonMinDifficultyBits(start *chainindex.BlockIndex, params *chaincfg.Params) uint32 {
	window := params.DifficultyAdjustmentInterval

	iter := start
	for iter != nil && iter.Height%window != 0 && iter.Bits == params.PowLimitBits {
		iter = iter.Parent
	}

	if iter == nil {
		return params.PowLimitBits
	}
	return iter.Bits
}

// calcRetarget performs the actual retarget computation at a difficulty
// adjustment boundary: find the block (window-1) predecessors back (or the
// genesis block if the chain isn't that long yet), scale the previous
// target by the ratio of the observed timespan to the target timespan
// clamped to [T/4, 4T], and renormalize the result into compact form.
func calcRetarget(prevNode *chainindex.BlockIndex, window int64, params *chaincfg.Params) (uint32, error) {
	firstNode := prevNode.RelativeAncestor(window - 1)
	if firstNode == nil {
		firstNode = genesisAncestor(prevNode)
	}

	targetTimespan := int64(params.TargetTimespan / time.Second)
	actualTimespan := prevNode.Time - firstNode.Time
	actualTimespan = clamp(actualTimespan, targetTimespan/4, targetTimespan*4)

	oldTarget, err := pow.Expand(prevNode.Bits)
	if err != nil {
		return 0, err
	}

	// newTarget = oldTarget * actualTimespan / targetTimespan. Using
	// math/big for this division is what keeps the 23-bit mantissa
	// renormalization (shifting the result back into compact form) a
	// matter of calling pow.Compact, rather than hand-rolled bit
	// shifting; Compact already guarantees the sign bit stays clear and
	// the mantissa fits 23 bits for any non-negative input.
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))

	if newTarget.Sign() <= 0 {
		newTarget = big.NewInt(1)
	}
	if newTarget.Cmp(params.PowLimit) > 0 {
		return params.PowLimitBits, nil
	}

	newBits := pow.Compact(newTarget)
	log.Debugf("difficulty retarget at height %d: old %08x new %08x",
		prevNode.Height+1, prevNode.Bits, newBits)
	return newBits, nil
}

// genesisAncestor walks all the way back to the root of the chain,
// returning prevNode itself if it is already the root. Used when fewer than
// window-1 predecessors exist yet.
func genesisAncestor(node *chainindex.BlockIndex) *chainindex.BlockIndex {
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}

// clamp restricts v to the inclusive range [lo, hi].
func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CheckProofOfWork ensures the provided block hash satisfies the target
// difficulty represented by nBits for the given network.
func CheckProofOfWork(blockHash *chainhash.Hash, nBits uint32, params *chaincfg.Params) error {
	return pow.CheckProofOfWork(blockHash, nBits, params.PowLimit)
}
