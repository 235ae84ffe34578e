// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// MerkleDepth is the fixed depth of the identity Merkle tree.
const MerkleDepth = 20

// IdentitySecrets are the three field-element secrets an identity holds;
// they never leave the claimant.
type IdentitySecrets struct {
	SecretKey    [32]byte
	NullifierKey [32]byte
	Trapdoor     [32]byte
}

// Commitment returns Poseidon(secretKey, nullifierKey, trapdoor), the
// public value stored as this identity's leaf in the identity Merkle tree.
func (s IdentitySecrets) Commitment() [32]byte {
	sk := elementFromBytes(s.SecretKey)
	nk := elementFromBytes(s.NullifierKey)
	td := elementFromBytes(s.Trapdoor)
	return toBytes(PoseidonMany(sk, nk, td))
}

// DeriveNullifier returns Poseidon(nullifierKey, epoch, DOMAIN_UBI), the
// value a claim reveals in place of the claimant's identity.
func (s IdentitySecrets) DeriveNullifier(epoch uint64) [32]byte {
	nk := elementFromBytes(s.NullifierKey)
	e := elementFromUint64(epoch)
	return toBytes(PoseidonMany(nk, e, domainUBI))
}

// MerkleProof is an ordered list of sibling hashes plus the per-level path
// bit (false = current node is on the left, true = on the right), from
// leaf to root.
type MerkleProof struct {
	Siblings [][32]byte
	PathBits []bool
}

// Valid reports whether the proof has exactly MerkleDepth levels and one
// path bit per sibling.
func (p MerkleProof) Valid() bool {
	return len(p.Siblings) == MerkleDepth && len(p.PathBits) == MerkleDepth
}

// Root folds leaf up the Merkle path described by p, using
// Poseidon(sibling, current) when the current node is on the right and
// Poseidon(current, sibling) when it is on the left, returning the
// resulting root.
func (p MerkleProof) Root(leaf [32]byte) [32]byte {
	cur := elementFromBytes(leaf)
	for i, sibling := range p.Siblings {
		sib := elementFromBytes(sibling)
		if p.PathBits[i] {
			cur = Poseidon(sib, cur)
		} else {
			cur = Poseidon(cur, sib)
		}
	}
	return toBytes(cur)
}

// fieldElementsEqual reports whether two 32-byte values are equal once
// both are reduced into the scalar field, the comparison ZK public inputs
// use throughout this package.
func fieldElementsEqual(a, b [32]byte) bool {
	var ea, eb fr.Element
	ea.SetBytes(a[:])
	eb.SetBytes(b[:])
	return ea.Equal(&eb)
}
