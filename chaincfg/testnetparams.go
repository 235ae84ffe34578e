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

// TestNetParams returns the network parameters for the Shurium test
// network. Its halving interval is compressed to roughly a week and it
// permits the minimum-difficulty exception described in §4.C step 3, so
// developers can keep mining test blocks without dedicated hardware.
func TestNetParams() *Params {
	testPowLimit := bigFromHex("000000ffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	genesisBlock := wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: chainhash.Hash{},
			Bits:      pow.BigToCompact(testPowLimit),
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
		Name:         "testnet",
		Net:          wire.TestNet3,
		GenesisBlock: &genesisBlock,
		GenesisHash:  genesisBlock.BlockHash(),

		PowLimit:                     testPowLimit,
		PowLimitBits:                 pow.BigToCompact(testPowLimit),
		NoRetargeting:                false,
		AllowMinDifficultyBlocks:     true,
		TargetSpacing:                2 * time.Minute,
		DifficultyAdjustmentInterval: 72, // ~2.4 hours at 2 minute spacing
		TargetTimespan:               72 * 2 * time.Minute,

		InitialReward:   50 * 1e8,
		HalvingInterval: 5040, // ~1 week at 2 minute spacing

		UBISplitPercent:          40,
		WorkSplitPercent:         30,
		ContributionSplitPercent: 10,
		EcosystemSplitPercent:    10,
		ReserveSplitPercent:      10,
		UBIDistributionInterval:  72, // every retarget interval

		EpochBlocks:         1440, // ~2 days at 2 minute spacing
		UBIClaimWindow:      1440,
		UBIGraceEpochs:      1,
		MinIdentitiesForUBI: 3,
		MaxUBIPerPerson:     5 * 1e8,

		PoUWOptional:         false,
		PoUWActivationHeight: 0,
	}
}
