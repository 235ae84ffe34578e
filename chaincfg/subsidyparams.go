// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// The methods in this file let *Params satisfy subsidy.Params without the
// chaincfg package needing to import the subsidy package back.

// InitialRewardAmount is part of the subsidy.Params interface.
func (p *Params) InitialRewardAmount() int64 { return p.InitialReward }

// HalvingIntervalBlocks is part of the subsidy.Params interface.
func (p *Params) HalvingIntervalBlocks() int64 { return p.HalvingInterval }

// UBISplitPct is part of the subsidy.Params interface.
func (p *Params) UBISplitPct() int64 { return p.UBISplitPercent }

// WorkSplitPct is part of the subsidy.Params interface.
func (p *Params) WorkSplitPct() int64 { return p.WorkSplitPercent }

// ContributionSplitPct is part of the subsidy.Params interface.
func (p *Params) ContributionSplitPct() int64 { return p.ContributionSplitPercent }

// EcosystemSplitPct is part of the subsidy.Params interface.
func (p *Params) EcosystemSplitPct() int64 { return p.EcosystemSplitPercent }

// ReserveSplitPct is part of the subsidy.Params interface.
func (p *Params) ReserveSplitPct() int64 { return p.ReserveSplitPercent }

// UBIDistributionIntervalBlocks is part of the subsidy.Params interface.
func (p *Params) UBIDistributionIntervalBlocks() int64 { return p.UBIDistributionInterval }
