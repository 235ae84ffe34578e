// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import "testing"

// TestCommitmentDeterministic ensures the same secrets always fold to the
// same commitment, and different secrets fold to different commitments.
func TestCommitmentDeterministic(t *testing.T) {
	var s1 IdentitySecrets
	s1.SecretKey[0] = 1
	s1.NullifierKey[0] = 2
	s1.Trapdoor[0] = 3

	s2 := s1

	if s1.Commitment() != s2.Commitment() {
		t.Error("identical secrets produced different commitments")
	}

	s2.Trapdoor[0] = 4
	if s1.Commitment() == s2.Commitment() {
		t.Error("different secrets produced the same commitment")
	}
}

// TestDeriveNullifierVariesByEpoch ensures the same identity claiming in
// two different epochs reveals two different nullifiers, the property
// that lets the same identity claim once per epoch.
func TestDeriveNullifierVariesByEpoch(t *testing.T) {
	var s IdentitySecrets
	s.NullifierKey[0] = 7

	n1 := s.DeriveNullifier(0)
	n2 := s.DeriveNullifier(1)
	if n1 == n2 {
		t.Error("nullifier did not vary across epochs")
	}

	n1Again := s.DeriveNullifier(0)
	if n1 != n1Again {
		t.Error("nullifier for the same epoch was not deterministic")
	}
}

// TestMerkleProofValid exercises the fixed-depth structural check.
func TestMerkleProofValid(t *testing.T) {
	full := MerkleProof{
		Siblings: make([][32]byte, MerkleDepth),
		PathBits: make([]bool, MerkleDepth),
	}
	if !full.Valid() {
		t.Error("expected a full-depth proof to be valid")
	}

	short := MerkleProof{
		Siblings: make([][32]byte, MerkleDepth-1),
		PathBits: make([]bool, MerkleDepth-1),
	}
	if short.Valid() {
		t.Error("expected a short proof to be invalid")
	}

	mismatched := MerkleProof{
		Siblings: make([][32]byte, MerkleDepth),
		PathBits: make([]bool, MerkleDepth-1),
	}
	if mismatched.Valid() {
		t.Error("expected a proof with mismatched slice lengths to be invalid")
	}
}

// TestMerkleProofRootOrderMatters ensures the left/right path bit actually
// changes the folded root, since Poseidon is not symmetric under argument
// swap in this construction.
func TestMerkleProofRootOrderMatters(t *testing.T) {
	var leaf, sibling [32]byte
	leaf[0] = 0x01
	sibling[0] = 0x02

	siblings := make([][32]byte, MerkleDepth)
	siblings[0] = sibling

	left := MerkleProof{Siblings: siblings, PathBits: make([]bool, MerkleDepth)}
	right := MerkleProof{Siblings: siblings, PathBits: make([]bool, MerkleDepth)}
	right.PathBits[0] = true

	if left.Root(leaf) == right.Root(leaf) {
		t.Error("expected differing path bit at a level to change the root")
	}
}

// TestMerkleProofRootDeterministic ensures folding the same leaf through
// the same proof always yields the same root.
func TestMerkleProofRootDeterministic(t *testing.T) {
	var leaf [32]byte
	leaf[0] = 0x9
	proof := MerkleProof{
		Siblings: make([][32]byte, MerkleDepth),
		PathBits: make([]bool, MerkleDepth),
	}
	for i := range proof.Siblings {
		proof.Siblings[i][0] = byte(i + 1)
	}

	if proof.Root(leaf) != proof.Root(leaf) {
		t.Error("expected Root to be deterministic")
	}
}
