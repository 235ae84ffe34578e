// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

// ProofType tags what circuit a ZKProof was generated against.
type ProofType uint8

// The proof types this package recognizes.
const (
	ProofTypeUnknown ProofType = iota
	ProofTypeUBIClaim
)

// ZKProof is an opaque proof byte bundle plus the public inputs it was
// generated against. The proof system itself is an external collaborator
// (§1); this package only shapes and threads the data the circuit expects.
type ZKProof struct {
	Type         ProofType
	Bytes        []byte
	PublicInputs [][32]byte
}

// Valid performs the structural checks ProcessClaim needs before handing
// the proof to the external verifier: a UBIClaim proof with at least the
// three public inputs §3 specifies (identityRoot, nullifierHash, epoch).
func (p ZKProof) Valid() bool {
	if p.Type != ProofTypeUBIClaim {
		return false
	}
	if len(p.PublicInputs) < 3 {
		return false
	}
	if len(p.Bytes) == 0 {
		return false
	}
	return true
}

// IdentityRoot returns the proof's first public input.
func (p ZKProof) IdentityRoot() [32]byte { return p.PublicInputs[0] }

// NullifierHash returns the proof's second public input.
func (p ZKProof) NullifierHash() [32]byte { return p.PublicInputs[1] }

// EpochInput returns the proof's third public input.
func (p ZKProof) EpochInput() [32]byte { return p.PublicInputs[2] }

// Prover generates UBI claim proofs from identity secrets and a membership
// proof. A production node wires this to the real proving system; this
// package depends only on the interface.
type Prover interface {
	GenerateUBIClaimProof(secrets IdentitySecrets, identityRoot [32]byte, membership MerkleProof, epoch uint64) (ZKProof, error)
}

// Verifier checks a ZKProof against a named circuit. A production node
// wires this to the real verifying key material; this package depends
// only on the interface.
type Verifier interface {
	Verify(proof ZKProof, circuit string) bool
}
