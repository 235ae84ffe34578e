// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package subsidy implements the block subsidy schedule and its five-way
// split between the UBI pool, useful-work rewards, contribution rewards,
// the ecosystem fund, and the reserve.
package subsidy

// maxHalvings is the number of halvings after which the subsidy is
// permanently zero, regardless of height. 64 right shifts of any int64
// already reach zero, so this is also the natural overflow boundary for the
// shift itself.
const maxHalvings = 64

// Params is the subset of chaincfg.Params the subsidy calculator needs. It
// is expressed as an interface, following the teacher's SubsidyParams
// pattern in blockchain/standalone, so callers can mock it in tests without
// constructing a full chaincfg.Params.
type Params interface {
	// InitialRewardAmount returns the total block subsidy at height 0.
	InitialRewardAmount() int64

	// HalvingIntervalBlocks returns the number of blocks between
	// successive halvings.
	HalvingIntervalBlocks() int64

	// UBISplitPct, WorkSplitPct, ContributionSplitPct, EcosystemSplitPct,
	// and ReserveSplitPct return the five independent integer
	// percentages of the subsidy routed to each purpose.
	UBISplitPct() int64
	WorkSplitPct() int64
	ContributionSplitPct() int64
	EcosystemSplitPct() int64
	ReserveSplitPct() int64

	// UBIDistributionIntervalBlocks returns the height interval at which
	// IsUBIDistributionBlock reports true.
	UBIDistributionIntervalBlocks() int64
}

// Split names the five independent destinations of a block's subsidy.
type Split struct {
	UBI          int64
	Work         int64
	Contribution int64
	Ecosystem    int64
	Reserve      int64
}

// Sum returns the total of all five splits. By construction (§4.B) this
// never exceeds the subsidy it was derived from.
func (s Split) Sum() int64 {
	return s.UBI + s.Work + s.Contribution + s.Ecosystem + s.Reserve
}

// GetBlockSubsidy returns the total block subsidy for the given height:
//
//	subsidy(height) = InitialReward >> (height / HalvingInterval)
//
// clamped to zero once 64 or more halvings have elapsed, and returning
// InitialReward unchanged at height 0.
func GetBlockSubsidy(height int64, params Params) int64 {
	if height < 0 {
		return 0
	}

	halvings := height / params.HalvingIntervalBlocks()
	if halvings >= maxHalvings {
		return 0
	}

	return params.InitialRewardAmount() >> uint(halvings)
}

// CalcSplit returns the five-way split of the subsidy at the given height.
// Each component is an independent integer percentage of the subsidy,
// truncated towards zero; the components are never scaled to force their
// sum to equal the subsidy exactly, so a few satoshis of the subsidy may go
// unassigned at every height (§4.B).
func CalcSplit(height int64, params Params) Split {
	total := GetBlockSubsidy(height, params)
	return Split{
		UBI:          total * params.UBISplitPct() / 100,
		Work:         total * params.WorkSplitPct() / 100,
		Contribution: total * params.ContributionSplitPct() / 100,
		Ecosystem:    total * params.EcosystemSplitPct() / 100,
		Reserve:      total * params.ReserveSplitPct() / 100,
	}
}

// IsUBIDistributionBlock reports whether height is one of the heights at
// which accumulated UBI splits are forwarded to the distributor, which is
// true iff height is a positive multiple of the network's UBI distribution
// interval.
func IsUBIDistributionBlock(height int64, params Params) bool {
	interval := params.UBIDistributionIntervalBlocks()
	return height > 0 && interval > 0 && height%interval == 0
}
