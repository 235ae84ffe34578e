// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// The methods in this file let *Params satisfy ubi.Params without the
// chaincfg package needing to import the ubi package back.

// EpochBlocksCount is part of the ubi.Params interface.
func (p *Params) EpochBlocksCount() int64 { return p.EpochBlocks }

// UBIClaimWindowBlocks is part of the ubi.Params interface.
func (p *Params) UBIClaimWindowBlocks() int64 { return p.UBIClaimWindow }

// UBIGraceEpochsCount is part of the ubi.Params interface.
func (p *Params) UBIGraceEpochsCount() int64 { return p.UBIGraceEpochs }

// MinIdentitiesForUBICount is part of the ubi.Params interface.
func (p *Params) MinIdentitiesForUBICount() uint32 { return p.MinIdentitiesForUBI }

// MaxUBIPerPersonAmount is part of the ubi.Params interface.
func (p *Params) MaxUBIPerPersonAmount() int64 { return p.MaxUBIPerPerson }
