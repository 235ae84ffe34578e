// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

// mockParams implements Params for tests, mirroring the teacher's small
// mock-interface-parameter pattern used throughout blockchain/.
type mockParams struct {
	epochBlocks   int64
	claimWindow   int64
	graceEpochs   int64
	minIdentities uint32
	maxPerPerson  int64
}

func (p *mockParams) EpochBlocksCount() int64          { return p.epochBlocks }
func (p *mockParams) UBIClaimWindowBlocks() int64      { return p.claimWindow }
func (p *mockParams) UBIGraceEpochsCount() int64       { return p.graceEpochs }
func (p *mockParams) MinIdentitiesForUBICount() uint32 { return p.minIdentities }
func (p *mockParams) MaxUBIPerPersonAmount() int64     { return p.maxPerPerson }

func testParams() *mockParams {
	return &mockParams{
		epochBlocks:   144,
		claimWindow:   144,
		graceEpochs:   2,
		minIdentities: 100,
		maxPerPerson:  500000000,
	}
}

// alwaysValidVerifier accepts every proof, isolating distributor-level
// decision logic from the external ZK verifier's behavior.
type alwaysValidVerifier struct{}

func (alwaysValidVerifier) Verify(proof ZKProof, circuit string) bool { return true }

// buildValidProof constructs a structurally valid ZKProof whose public
// inputs match identityRoot and epoch exactly, as ProcessClaim requires
// before consulting the external verifier.
func buildValidProof(identityRoot [32]byte, nullifierHash [32]byte, epoch uint64) ZKProof {
	return ZKProof{
		Type:  ProofTypeUBIClaim,
		Bytes: []byte{0x01, 0x02, 0x03},
		PublicInputs: [][32]byte{
			identityRoot,
			nullifierHash,
			toBytes(elementFromUint64(epoch)),
		},
	}
}

// buildClaim constructs a claim with a valid proof for the given epoch,
// nullifier, and identity root, ready to submit to a distributor.
func buildClaim(epoch uint64, nullifierHash [32]byte, identityRoot [32]byte, recipient [20]byte) UBIClaim {
	return UBIClaim{
		Epoch:     epoch,
		Nullifier: Nullifier{Hash: nullifierHash, Epoch: epoch},
		Recipient: recipient,
		Proof:     buildValidProof(identityRoot, nullifierHash, epoch),
		Status:    ClaimPending,
	}
}
