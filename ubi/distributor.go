// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import (
	"sync"

	"github.com/decred/slog"
)

// log is the package-level logger, following the teacher's per-subsystem
// slog convention; UseLogger installs a real backend.
var log = slog.Disabled

// UseLogger installs logger as this package's logger, following the
// teacher's per-subsystem wiring; cmd/shuriumd calls this once at start
// with a logger obtained from internal/consensuslog.
func UseLogger(logger slog.Logger) { log = logger }

// Params is the subset of chaincfg.Params the distributor needs, expressed
// as a small interface so tests can supply a mock without constructing a
// full chaincfg.Params.
type Params interface {
	EpochBlocksCount() int64
	UBIClaimWindowBlocks() int64
	UBIGraceEpochsCount() int64
	MinIdentitiesForUBICount() uint32
	MaxUBIPerPersonAmount() int64
}

// UBIDistributor owns every epoch pool and all distribution counters. A
// single mutex guards all of its state; every public method acquires it
// for its entire body, including query-only calls, and never calls back
// into the distributor while holding it (§5).
type UBIDistributor struct {
	mu sync.Mutex

	params Params

	pools        map[uint64]*EpochUBIPool
	currentEpoch uint64

	totalDistributed int64
	totalClaims      uint64
}

// NewUBIDistributor returns a distributor with no pools and currentEpoch 0.
func NewUBIDistributor(params Params) *UBIDistributor {
	return &UBIDistributor{
		params: params,
		pools:  make(map[uint64]*EpochUBIPool),
	}
}

// getOrCreatePool returns the pool for epoch, creating it if absent. The
// caller must hold d.mu.
func (d *UBIDistributor) getOrCreatePool(epoch uint64) *EpochUBIPool {
	if pool, ok := d.pools[epoch]; ok {
		return pool
	}
	pool := NewEpochUBIPool(epoch)
	d.pools[epoch] = pool
	return pool
}

// AddBlockReward routes a block's UBI split into the pool for the height's
// epoch, advancing currentEpoch monotonically. Crossing into a new epoch
// logs (but does not finalize) any prior unfinalized epochs.
func (d *UBIDistributor) AddBlockReward(height int64, amount int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	epoch := uint64(height) / uint64(d.params.EpochBlocksCount())

	if epoch > d.currentEpoch {
		for e := d.currentEpoch; e < epoch; e++ {
			if pool, ok := d.pools[e]; ok && !pool.IsFinalized {
				log.Warnf("entering epoch %d with epoch %d still unfinalized", epoch, e)
			}
		}
		d.currentEpoch = epoch
	}

	pool := d.getOrCreatePool(epoch)
	pool.TotalPool += amount
}

// FinalizeEpoch sets the pool's EndHeight and ClaimDeadline and finalizes
// it, freezing its per-person allotment. It is a no-op if no pool exists
// for epoch.
func (d *UBIDistributor) FinalizeEpoch(epoch uint64, identityCount uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[epoch]
	if !ok {
		return nil
	}

	epochBlocks := d.params.EpochBlocksCount()
	endHeight := int32((int64(epoch)+1)*epochBlocks - 1)
	claimDeadline := endHeight + int32(d.params.UBIClaimWindowBlocks()) +
		int32(d.params.UBIGraceEpochsCount()*epochBlocks)

	pool.EndHeight = endHeight
	pool.ClaimDeadline = claimDeadline

	return pool.Finalize(identityCount, d.params.MinIdentitiesForUBICount(), d.params.MaxUBIPerPersonAmount())
}

// evaluateClaim runs the §4.G decision order against a read-only view of
// the claim, returning the first failing status or ClaimValid.
func (d *UBIDistributor) evaluateClaim(claim *UBIClaim, identityTreeRoot [32]byte, currentHeight int32, verifier Verifier) ClaimStatus {
	pool, ok := d.pools[claim.Epoch]
	if !ok || !pool.IsFinalized {
		return ClaimEpochNotComplete
	}
	if currentHeight > pool.ClaimDeadline {
		return ClaimEpochExpired
	}
	if pool.AmountPerPerson == 0 {
		return ClaimPoolEmpty
	}
	if pool.HasNullifier(claim.Nullifier) {
		return ClaimDoubleClaim
	}

	if !claim.Proof.Valid() {
		return ClaimInvalidProof
	}
	if claim.Proof.Type != ProofTypeUBIClaim {
		return ClaimInvalidProof
	}
	if !fieldElementsEqual(claim.Proof.IdentityRoot(), identityTreeRoot) {
		return ClaimInvalidProof
	}
	epochBytes := toBytes(elementFromUint64(claim.Epoch))
	if !fieldElementsEqual(claim.Proof.EpochInput(), epochBytes) {
		return ClaimInvalidProof
	}
	if verifier == nil || !verifier.Verify(claim.Proof, "ubi_claim") {
		return ClaimInvalidProof
	}

	return ClaimValid
}

// ProcessClaim stamps claim.SubmitHeight, evaluates it against the §4.G
// order, writes the first failing status (or ClaimValid) into claim, and
// on success records the claim against its pool and bumps distribution
// totals.
func (d *UBIDistributor) ProcessClaim(claim *UBIClaim, identityTreeRoot [32]byte, currentHeight int32, verifier Verifier) ClaimStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	claim.SubmitHeight = currentHeight

	status := d.evaluateClaim(claim, identityTreeRoot, currentHeight, verifier)
	claim.Status = status
	if status != ClaimValid {
		return status
	}

	pool := d.pools[claim.Epoch]
	claim.Amount = pool.AmountPerPerson
	pool.RecordClaim(claim.Nullifier, claim.Amount)
	d.totalDistributed += claim.Amount
	d.totalClaims++

	return status
}

// VerifyClaim evaluates claim exactly as ProcessClaim would, without
// mutating any state — no submitHeight stamp, no pool update. Used by
// relayers to pre-screen claims before submission.
func (d *UBIDistributor) VerifyClaim(claim UBIClaim, identityTreeRoot [32]byte, currentHeight int32, verifier Verifier) ClaimStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.evaluateClaim(&claim, identityTreeRoot, currentHeight, verifier)
}

// IsEpochClaimable reports whether the pool for epoch is finalized and
// accepting claims at height.
func (d *UBIDistributor) IsEpochClaimable(epoch uint64, height int32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[epoch]
	if !ok {
		return false
	}
	return pool.AcceptingClaims(height)
}

// GetClaimDeadline returns the pool's claim deadline for epoch, if it
// exists.
func (d *UBIDistributor) GetClaimDeadline(epoch uint64) (int32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[epoch]
	if !ok {
		return 0, false
	}
	return pool.ClaimDeadline, true
}

// GetPool returns a deep-copied snapshot of the pool for epoch, if it
// exists. The returned pool's nullifier set is independent of the
// distributor's internal state and safe to retain or mutate.
func (d *UBIDistributor) GetPool(epoch uint64) (EpochUBIPool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[epoch]
	if !ok {
		return EpochUBIPool{}, false
	}

	snapshot := *pool
	snapshot.usedNullifiers = make(map[[32]byte]struct{}, len(pool.usedNullifiers))
	for h := range pool.usedNullifiers {
		snapshot.usedNullifiers[h] = struct{}{}
	}
	return snapshot, true
}

// GetAmountPerPerson returns the finalized per-person allotment for epoch,
// if the pool exists.
func (d *UBIDistributor) GetAmountPerPerson(epoch uint64) (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[epoch]
	if !ok {
		return 0, false
	}
	return pool.AmountPerPerson, true
}

// EpochStats summarizes a pool's state for external reporting.
type EpochStats struct {
	TotalPool       int64
	EligibleCount   uint32
	AmountPerPerson int64
	AmountClaimed   int64
	ClaimCount      uint32
	IsFinalized     bool
}

// GetEpochStats returns a summary of the pool for epoch, if it exists.
func (d *UBIDistributor) GetEpochStats(epoch uint64) (EpochStats, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[epoch]
	if !ok {
		return EpochStats{}, false
	}
	return EpochStats{
		TotalPool:       pool.TotalPool,
		EligibleCount:   pool.EligibleCount,
		AmountPerPerson: pool.AmountPerPerson,
		AmountClaimed:   pool.AmountClaimed,
		ClaimCount:      pool.ClaimCount,
		IsFinalized:     pool.IsFinalized,
	}, true
}

// GetAverageClaimRate returns the mean fraction of eligible identities
// that have claimed, across every finalized pool with a nonzero eligible
// count. It returns 0 if no such pool exists.
func (d *UBIDistributor) GetAverageClaimRate() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sum float64
	var n int
	for _, pool := range d.pools {
		if !pool.IsFinalized || pool.EligibleCount == 0 {
			continue
		}
		sum += float64(pool.ClaimCount) / float64(pool.EligibleCount)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// pruneMargin is the number of extra epochs, beyond the grace period, a
// pool is retained for before PruneOldPools removes it.
const pruneMargin = 10

// PruneOldPools deletes every pool below currentEpoch - UBIGraceEpochs -
// pruneMargin.
func (d *UBIDistributor) PruneOldPools(currentEpoch uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	grace := uint64(d.params.UBIGraceEpochsCount())
	threshold := grace + pruneMargin
	if currentEpoch < threshold {
		return
	}
	cutoff := currentEpoch - threshold

	for epoch := range d.pools {
		if epoch < cutoff {
			delete(d.pools, epoch)
		}
	}
}

// TotalDistributed returns the running total amount paid out across every
// processed claim.
func (d *UBIDistributor) TotalDistributed() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.totalDistributed
}

// TotalClaims returns the running count of successfully processed claims.
func (d *UBIDistributor) TotalClaims() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.totalClaims
}
