// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// ClaimStatus is the terminal or pending state of a UBIClaim. Byte values
// match the serialization order in §6.
type ClaimStatus uint8

// The status set from §6.
const (
	ClaimPending ClaimStatus = iota
	ClaimValid
	ClaimInvalidProof
	ClaimDoubleClaim
	ClaimIdentityNotFound
	ClaimEpochExpired
	ClaimEpochNotComplete
	ClaimPoolEmpty
)

func (s ClaimStatus) String() string {
	switch s {
	case ClaimPending:
		return "Pending"
	case ClaimValid:
		return "Valid"
	case ClaimInvalidProof:
		return "InvalidProof"
	case ClaimDoubleClaim:
		return "DoubleClaim"
	case ClaimIdentityNotFound:
		return "IdentityNotFound"
	case ClaimEpochExpired:
		return "EpochExpired"
	case ClaimEpochNotComplete:
		return "EpochNotComplete"
	case ClaimPoolEmpty:
		return "PoolEmpty"
	default:
		return "Unknown"
	}
}

// Nullifier is a 32-byte hash plus the epoch it belongs to; equality is
// over both fields.
type Nullifier struct {
	Hash  [32]byte
	Epoch uint64
}

// Equal reports whether two nullifiers refer to the same (identity, epoch)
// pair.
func (n Nullifier) Equal(o Nullifier) bool {
	return n.Hash == o.Hash && n.Epoch == o.Epoch
}

// UBIClaim bundles everything a claimant submits to draw their share of an
// epoch's UBI pool.
type UBIClaim struct {
	Epoch        uint64
	Nullifier    Nullifier
	Recipient    [20]byte // Hash160.
	Proof        ZKProof
	Amount       int64
	SubmitHeight int32
	Status       ClaimStatus
}

// minClaimSize is the serialized size of a UBIClaim with an empty proof
// payload; Deserialize rejects any input shorter than this.
const minClaimSize = 77 + 4

// NewClaim constructs a claim via the §4.I generator: derive the
// nullifier, fold the identity root from the membership proof, and invoke
// the external prover. An empty membership proof yields the
// no-proof-attempted InvalidProof sentinel without consulting the prover.
func NewClaim(epoch uint64, secrets IdentitySecrets, recipient [20]byte, membership MerkleProof, prover Prover) UBIClaim {
	claim := UBIClaim{
		Epoch:     epoch,
		Nullifier: Nullifier{Hash: secrets.DeriveNullifier(epoch), Epoch: epoch},
		Recipient: recipient,
		Status:    ClaimPending,
	}

	if !membership.Valid() {
		claim.Status = ClaimInvalidProof
		return claim
	}

	identityRoot := membership.Root(secrets.Commitment())

	proof, err := prover.GenerateUBIClaimProof(secrets, identityRoot, membership, epoch)
	if err != nil {
		claim.Status = ClaimInvalidProof
		return claim
	}

	claim.Proof = proof
	return claim
}

// Hash returns SHA256(Serialize(claim)).
func (c UBIClaim) Hash() [32]byte {
	return sha256.Sum256(c.Serialize())
}

// Serialize encodes c in the canonical layout from §4.H.
func (c UBIClaim) Serialize() []byte {
	proofBytes := serializeZKProof(c.Proof)

	buf := make([]byte, minClaimSize+len(proofBytes))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.Epoch))
	copy(buf[4:36], c.Nullifier.Hash[:])
	binary.LittleEndian.PutUint64(buf[36:44], c.Nullifier.Epoch)
	copy(buf[44:64], c.Recipient[:])
	binary.LittleEndian.PutUint32(buf[64:68], uint32(int32(c.SubmitHeight)))
	buf[68] = byte(c.Status)
	binary.LittleEndian.PutUint64(buf[69:77], uint64(c.Amount))
	binary.LittleEndian.PutUint32(buf[77:81], uint32(len(proofBytes)))
	copy(buf[81:], proofBytes)

	return buf
}

// ErrClaimTooShort and ErrClaimProofSize are returned by Deserialize for
// structurally malformed input, per §7 ("structural errors... abort that
// item").
var (
	ErrClaimTooShort  = errors.New("ubi: claim shorter than minimum size")
	ErrClaimProofSize = errors.New("ubi: declared proof size exceeds remaining bytes")
)

// DeserializeClaim decodes a claim from its canonical byte layout,
// rejecting input shorter than 77+4 bytes or whose declared proofSize
// exceeds the remaining bytes.
func DeserializeClaim(buf []byte) (UBIClaim, error) {
	if len(buf) < minClaimSize {
		return UBIClaim{}, ErrClaimTooShort
	}

	var c UBIClaim
	c.Epoch = uint64(binary.LittleEndian.Uint32(buf[0:4]))
	copy(c.Nullifier.Hash[:], buf[4:36])
	c.Nullifier.Epoch = binary.LittleEndian.Uint64(buf[36:44])
	copy(c.Recipient[:], buf[44:64])
	c.SubmitHeight = int32(binary.LittleEndian.Uint32(buf[64:68]))
	c.Status = ClaimStatus(buf[68])
	c.Amount = int64(binary.LittleEndian.Uint64(buf[69:77]))

	proofSize := binary.LittleEndian.Uint32(buf[77:81])
	if int(proofSize) > len(buf)-81 {
		return UBIClaim{}, ErrClaimProofSize
	}

	proof, err := deserializeZKProof(buf[81 : 81+int(proofSize)])
	if err != nil {
		return UBIClaim{}, err
	}
	c.Proof = proof

	return c, nil
}

// serializeZKProof encodes a ZKProof as: 1-byte type, 4-byte proof-bytes
// length, proof bytes, 4-byte public-input count, 32 bytes per input. This
// is the opaque payload §4.H's proofSize/proof bytes fields carry; the
// format is internal to this package, not a wire contract of its own.
func serializeZKProof(p ZKProof) []byte {
	buf := make([]byte, 0, 9+len(p.Bytes)+32*len(p.PublicInputs))

	buf = append(buf, byte(p.Type))

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(p.Bytes)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, p.Bytes...)

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(p.PublicInputs)))
	buf = append(buf, countBuf[:]...)
	for _, input := range p.PublicInputs {
		buf = append(buf, input[:]...)
	}

	return buf
}

func deserializeZKProof(buf []byte) (ZKProof, error) {
	if len(buf) == 0 {
		return ZKProof{}, nil
	}
	if len(buf) < 9 {
		return ZKProof{}, ErrClaimProofSize
	}

	p := ZKProof{Type: ProofType(buf[0])}
	pos := 1

	proofLen := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
	pos += 4
	if pos+proofLen > len(buf) {
		return ZKProof{}, ErrClaimProofSize
	}
	p.Bytes = append([]byte(nil), buf[pos:pos+proofLen]...)
	pos += proofLen

	if pos+4 > len(buf) {
		return ZKProof{}, ErrClaimProofSize
	}
	inputCount := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
	pos += 4

	if pos+inputCount*32 > len(buf) {
		return ZKProof{}, ErrClaimProofSize
	}
	p.PublicInputs = make([][32]byte, inputCount)
	for i := 0; i < inputCount; i++ {
		copy(p.PublicInputs[i][:], buf[pos:pos+32])
		pos += 32
	}

	return p, nil
}
