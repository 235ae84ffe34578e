// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
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

// MainNetParams returns the network parameters for the main Shurium
// network.
func MainNetParams() *Params {
	// mainPowLimit is the highest proof of work value a Shurium mainnet
	// block can have. It is the value 2^216 - 1 (compact form 0x1c00ffff),
	// one byte tighter than the 2^224 - 1 the teacher's btcsuite-derived
	// networks use for their easiest possible target; testnet uses
	// 2^224 - 1.
	mainPowLimit := bigFromHex("00000000ffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	genesisBlock := wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: chainhash.Hash{},
			Bits:      pow.BigToCompact(mainPowLimit),
			Timestamp: time.Unix(1735689600, 0), // 2025-01-01 00:00:00 UTC
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
		Name:         "mainnet",
		Net:          wire.MainNet,
		GenesisBlock: &genesisBlock,
		GenesisHash:  genesisBlock.BlockHash(),

		PowLimit:                     mainPowLimit,
		PowLimitBits:                 pow.BigToCompact(mainPowLimit),
		NoRetargeting:                false,
		AllowMinDifficultyBlocks:     false,
		TargetSpacing:                2 * time.Minute,
		DifficultyAdjustmentInterval: 720, // ~1 day at 2 minute spacing
		TargetTimespan:               720 * 2 * time.Minute,

		InitialReward:   50 * 1e8,
		HalvingInterval: 1051200, // ~4 years at 2 minute spacing

		UBISplitPercent:          40,
		WorkSplitPercent:         30,
		ContributionSplitPercent: 10,
		EcosystemSplitPercent:    10,
		ReserveSplitPercent:      10,
		UBIDistributionInterval:  720, // once per day

		EpochBlocks:         20160, // ~4 weeks at 2 minute spacing
		UBIClaimWindow:      20160,
		UBIGraceEpochs:      2,
		MinIdentitiesForUBI: 1000,
		MaxUBIPerPerson:     5 * 1e8,

		PoUWOptional:         false,
		PoUWActivationHeight: 0,
	}
}
