// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
	"github.com/shurium/shurium/pow"
)

// SimNetParams returns the network parameters for the Shurium simulation
// test network. It disables retargeting entirely and marks PoUW optional,
// so a single local process can generate a private chain without solving
// any useful-work problems.
func SimNetParams() *Params {
	simPowLimit := bigFromHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	genesisBlock := wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: chainhash.Hash{},
			Bits:      pow.BigToCompact(simPowLimit),
			Timestamp: time.Unix(1735689600, 0),
			Nonce:     0,
		},
		Transactions: []*wire.MsgTx{{
			SerType: wire.TxSerializeFull,
			Version: 1,
			TxIn: []*wire.TxIn{{
				PreviousOutPoint: wire.OutPoint{
					Hash:  chainhash.Hash{},
					Index: 0xffffffff,
					Tree:  0,
				},
				SignatureScript: []byte{0x00, 0x00},
				Sequence:        0xffffffff,
				BlockHeight:     wire.NullBlockHeight,
				BlockIndex:      wire.NullBlockIndex,
				ValueIn:         wire.NullValueIn,
			}},
			TxOut: []*wire.TxOut{{
				Version:  0,
				Value:    0,
				PkScript: []byte{},
			}},
			LockTime: 0,
			Expiry:   0,
		}},
	}
	genesisBlock.Header.MerkleRoot = genesisBlock.Transactions[0].TxHashFull()

	return &Params{
		Name:         "simnet",
		Net:          wire.SimNet,
		GenesisBlock: &genesisBlock,
		GenesisHash:  genesisBlock.BlockHash(),

		PowLimit:                     simPowLimit,
		PowLimitBits:                 pow.BigToCompact(simPowLimit),
		NoRetargeting:                true,
		AllowMinDifficultyBlocks:     true,
		TargetSpacing:                1 * time.Second,
		DifficultyAdjustmentInterval: 8,
		TargetTimespan:               8 * time.Second,

		InitialReward:   50 * 1e8,
		HalvingInterval: 128,

		UBISplitPercent:          40,
		WorkSplitPercent:         30,
		ContributionSplitPercent: 10,
		EcosystemSplitPercent:    10,
		ReserveSplitPercent:      10,
		UBIDistributionInterval:  8,

		EpochBlocks:         32,
		UBIClaimWindow:      32,
		UBIGraceEpochs:      1,
		MinIdentitiesForUBI: 1,
		MaxUBIPerPerson:     5 * 1e8,

		PoUWOptional:         true,
		PoUWActivationHeight: 0,
	}
}
