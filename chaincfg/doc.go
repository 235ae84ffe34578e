// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameter profiles consumed by the
// consensus core: the subsidy schedule, the difficulty-retarget constants,
// the PoUW and UBI constants, and the genesis block each network starts
// from.
//
// Three standard networks are defined: main, test, and sim. They are
// incompatible with each other (each has a different genesis block) and
// callers should not mix values derived under one profile with logic running
// against another.
//
// For main packages, a (typically global) var is assigned the address of one
// of the standard Params vars for use as the application's "active" network:
//
//	var network = flag.String("network", "mainnet", "network to operate on")
//
//	func main() {
//	        flag.Parse()
//
//	        var params *chaincfg.Params
//	        switch *network {
//	        case "testnet":
//	                params = chaincfg.TestNetParams()
//	        case "simnet":
//	                params = chaincfg.SimNetParams()
//	        default:
//	                params = chaincfg.MainNetParams()
//	        }
//
//	        // ... construct the consensus engine with params
//	}
//
// If an application does not use one of the standard networks, a new Params
// struct may be created which defines the parameters for the non-standard
// network.  As a general rule of thumb, all network parameters should be
// unique to the network, but parameter collisions can still occur.
package chaincfg
