// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
)

// Params defines the set of network-wide constants the consensus core
// reads. Every numeric constant named in §6 of the specification has a
// field here; the zero value of Params is not a usable network and every
// constructor below fills in every field explicitly, the same way the
// teacher's MainNetParams/TestNetParams/SimNetParams do.
type Params struct {
	// Name is the human-readable identifier for the network, e.g.
	// "mainnet".
	Name string

	// Net is the magic number identifying the network, reused from the
	// wire package purely for interface symmetry with the teacher; the
	// consensus core never serializes it onto the wire itself.
	Net wire.CurrencyNet

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the hash of the genesis block, used as the
	// PrevBlock of height-1 blocks and as the chain's root identity.
	GenesisHash chainhash.Hash

	// --- Proof-of-work parameters ---

	// PowLimit is the highest proof-of-work target a block on this
	// network may have, expressed as the expanded 256-bit integer.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in its compact representation.
	PowLimitBits uint32

	// NoRetargeting disables the difficulty retarget algorithm entirely;
	// CalcNextRequiredDifficulty always returns the previous block's
	// nBits. Used by regression/simnet-style test networks.
	NoRetargeting bool

	// AllowMinDifficultyBlocks permits the special minimum-difficulty
	// exception described in §4.C step 3. Only ever true on test
	// networks.
	AllowMinDifficultyBlocks bool

	// TargetSpacing is the average time between blocks the difficulty
	// retarget algorithm aims for.
	TargetSpacing time.Duration

	// TargetTimespan is the total wall-clock time a full retarget
	// window is expected to take; it must equal TargetSpacing times
	// DifficultyAdjustmentInterval for the algorithm to converge on
	// TargetSpacing.
	TargetTimespan time.Duration

	// DifficultyAdjustmentInterval is the number of blocks between
	// retargets ("W" in §4.C).
	DifficultyAdjustmentInterval int64

	// --- Subsidy parameters ---

	// InitialReward is the total block subsidy paid at height 0, before
	// any halving.
	InitialReward int64

	// HalvingInterval is the number of blocks between successive
	// subsidy halvings.
	HalvingInterval int64

	// UBISplitPercent, WorkSplitPercent, ContributionSplitPercent,
	// EcosystemSplitPercent, and ReserveSplitPercent are the five
	// independent integer percentages of the subsidy routed to each
	// purpose. They need not sum to 100; any remainder stays unminted.
	UBISplitPercent           int64
	WorkSplitPercent          int64
	ContributionSplitPercent  int64
	EcosystemSplitPercent     int64
	ReserveSplitPercent       int64

	// UBIDistributionInterval is the block-height interval at which
	// IsUBIDistributionBlock reports true.
	UBIDistributionInterval int64

	// --- UBI epoch parameters ---

	// EpochBlocks is the number of block heights per UBI epoch.
	EpochBlocks int64

	// UBIClaimWindow is the number of blocks after an epoch's end
	// height during which claims against that epoch's pool are
	// accepted.
	UBIClaimWindow int64

	// UBIGraceEpochs is the number of additional epochs a finalized
	// pool is retained after its claim window nominally closes, and
	// also extends the claim deadline itself (see
	// UBIDistributor.FinalizeEpoch and PruneOldPools).
	UBIGraceEpochs int64

	// MinIdentitiesForUBI is the minimum eligible identity count an
	// epoch must have for its pool to pay out anything at all.
	MinIdentitiesForUBI uint32

	// MaxUBIPerPerson caps the per-identity payout for any single
	// epoch, regardless of how small the eligible population is.
	MaxUBIPerPerson int64

	// --- PoUW parameters ---

	// PoUWOptional allows blocks with no PoUW commitment to validate.
	// True on test/regression networks, false on networks where PoUW
	// is mandatory.
	PoUWOptional bool

	// PoUWActivationHeight is the height at which PoUW commitment
	// validation begins being enforced. Reserved for networks that
	// activate the rule after genesis; the consensus core in this
	// repository enforces PoUW from height 0 on every profile defined
	// here, so this is always 0 for the shipped networks.
	PoUWActivationHeight int64
}

// bigFromHex is a small helper used by the network profiles below to build
// powLimit values from a literal hex string.
func bigFromHex(hex string) *big.Int {
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("chaincfg: invalid hex constant: " + hex)
	}
	return n
}
