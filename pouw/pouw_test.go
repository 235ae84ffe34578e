// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pouw

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/txscript/v4"
	"github.com/decred/dcrd/wire"
)

// buildCoinbase constructs a minimal coinbase transaction whose first
// input's signature script is sigScript, for extraction tests.
func buildCoinbase(sigScript []byte) *wire.MsgTx {
	tx := wire.NewMsgTx()
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
		SignatureScript:  sigScript,
	})
	return tx
}

// validCommitment returns a 32-byte hash with at least minByteTransitions
// transitions, such that its first four bytes XOR prevHash's first four
// bytes are neither all-zero nor all-ones.
func validCommitment(prevHash chainhash.Hash) chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		if i%2 == 0 {
			h[i] = 0xAA
		} else {
			h[i] = 0x55
		}
	}
	// Ensure it isn't equal to prevHash and XORs non-degenerately.
	h[0] = prevHash[0] ^ 0x01
	return h
}

// TestExtractCommitmentFromScriptSig exercises scenario S6's construction
// path: a commitment embedded directly in the coinbase scriptSig.
func TestExtractCommitmentFromScriptSig(t *testing.T) {
	var prevHash chainhash.Hash
	prevHash[0] = 0x42

	commitment := validCommitment(prevHash)

	script := append([]byte{0x01, 0x02, 0x03}, CommitmentMagic[:]...)
	script = append(script, commitment[:]...)
	script = append(script, 0x99) // trailing padding after the payload.

	coinbase := buildCoinbase(script)
	got := ExtractCommitment(coinbase)
	if got == nil {
		t.Fatal("expected a commitment, got nil")
	}
	if *got != commitment {
		t.Fatalf("got %x, want %x", got[:], commitment[:])
	}
}

// TestExtractCommitmentFromOpReturn exercises the output-script scanning
// path, with a canonical data push between OP_RETURN and the magic.
func TestExtractCommitmentFromOpReturn(t *testing.T) {
	var prevHash chainhash.Hash
	commitment := validCommitment(prevHash)

	payload := append(append([]byte{}, CommitmentMagic[:]...), commitment[:]...)

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_RETURN)
	builder.AddData(payload)
	script, err := builder.Script()
	if err != nil {
		t.Fatalf("unexpected error building script: %v", err)
	}

	coinbase := buildCoinbase(nil)
	coinbase.AddTxOut(&wire.TxOut{PkScript: script})

	got := ExtractCommitment(coinbase)
	if got == nil {
		t.Fatal("expected a commitment, got nil")
	}
	if *got != commitment {
		t.Fatalf("got %x, want %x", got[:], commitment[:])
	}
}

// TestExtractCommitmentNone ensures a coinbase with no commitment anywhere
// yields nil.
func TestExtractCommitmentNone(t *testing.T) {
	coinbase := buildCoinbase([]byte{0x01, 0x02, 0x03})
	coinbase.AddTxOut(&wire.TxOut{PkScript: []byte{txscript.OP_DUP, txscript.OP_HASH160}})

	if got := ExtractCommitment(coinbase); got != nil {
		t.Fatalf("expected nil, got %x", got[:])
	}
}

// TestValidateCommitmentScenarioS6 exercises scenario S6 directly: a
// properly constructed commitment validates, and perturbing it to equal
// the previous hash or to lose byte transitions makes validation fail.
func TestValidateCommitmentScenarioS6(t *testing.T) {
	// prevHash has a byte transition at every position, so a commitment
	// equal to it passes the entropy check and reaches the prevHash check.
	var prevHash chainhash.Hash
	for i := range prevHash {
		prevHash[i] = byte(0x7a + i)
	}

	commitment := validCommitment(prevHash)
	if err := ValidateCommitment(&commitment, &prevHash, false, false); err != nil {
		t.Fatalf("expected valid commitment, got error: %v", err)
	}

	// Altering H to equal prevHash must fail.
	equalToPrev := prevHash
	if err := ValidateCommitment(&equalToPrev, &prevHash, false, false); err != ErrMatchesPrevHash {
		t.Fatalf("expected ErrMatchesPrevHash, got %v", err)
	}

	// Altering H to have fewer than 8 byte transitions must fail.
	var constant chainhash.Hash
	for i := range constant {
		constant[i] = 0x11
	}
	if err := ValidateCommitment(&constant, &prevHash, false, false); err != ErrInsufficientEntropy {
		t.Fatalf("expected ErrInsufficientEntropy, got %v", err)
	}
}

// TestValidateCommitmentGenesisExempt ensures the genesis block is exempt
// regardless of commitment state.
func TestValidateCommitmentGenesisExempt(t *testing.T) {
	if err := ValidateCommitment(nil, nil, true, false); err != nil {
		t.Fatalf("expected genesis to be exempt, got %v", err)
	}
}

// TestValidateCommitmentMissingRequiresOptional ensures a missing
// commitment is only accepted when the network marks PoUW optional.
func TestValidateCommitmentMissingRequiresOptional(t *testing.T) {
	if err := ValidateCommitment(nil, nil, false, false); err != ErrNoCommitment {
		t.Fatalf("expected ErrNoCommitment, got %v", err)
	}
	if err := ValidateCommitment(nil, nil, false, true); err != nil {
		t.Fatalf("expected nil on optional network, got %v", err)
	}
}

// TestValidateCommitmentZero ensures an all-zero commitment is rejected.
func TestValidateCommitmentZero(t *testing.T) {
	var zero, prevHash chainhash.Hash
	prevHash[0] = 0x01
	if err := ValidateCommitment(&zero, &prevHash, false, false); err != ErrZeroCommitment {
		t.Fatalf("expected ErrZeroCommitment, got %v", err)
	}
}

// TestVerifyPoUWSolutionMonotoneInDifficulty exercises universal invariant
// 11: a solution satisfying the predicate at difficulty d also satisfies
// it for all 0 < d' <= d.
func TestVerifyPoUWSolutionMonotoneInDifficulty(t *testing.T) {
	var problemHash chainhash.Hash
	problemHash[0] = 0x01

	var solution []byte
	var hash []byte
	for nonce := 0; nonce < 1_000_000; nonce++ {
		candidate := make([]byte, 32)
		candidate[0] = byte(nonce)
		candidate[1] = byte(nonce >> 8)
		candidate[2] = byte(nonce >> 16)

		h := sha256.New()
		h.Write(problemHash[:])
		h.Write(candidate)
		sum := h.Sum(nil)
		if leadingZeroBits(sum) >= 8 {
			solution = candidate
			hash = sum
			break
		}
	}
	if solution == nil {
		t.Fatal("failed to find a qualifying solution in the search budget")
	}

	d := leadingZeroBits(hash)
	if !VerifyPoUWSolution(&problemHash, solution, d) {
		t.Fatalf("expected solution to satisfy its own derived difficulty %d", d)
	}
	for dPrime := uint32(1); dPrime <= d; dPrime++ {
		if !VerifyPoUWSolution(&problemHash, solution, dPrime) {
			t.Fatalf("expected solution to satisfy weaker difficulty %d given it satisfies %d", dPrime, d)
		}
	}
}

// TestVerifyPoUWSolutionRejectsZeroDifficulty ensures difficulty == 0 is
// always rejected as misconfiguration.
func TestVerifyPoUWSolutionRejectsZeroDifficulty(t *testing.T) {
	var problemHash chainhash.Hash
	solution := bytes.Repeat([]byte{0x42}, 32)
	if VerifyPoUWSolution(&problemHash, solution, 0) {
		t.Fatal("expected difficulty 0 to be rejected")
	}
}

// TestVerifyPoUWSolutionRejectsShortOrZeroSolution ensures the length and
// all-zero guards hold.
func TestVerifyPoUWSolutionRejectsShortOrZeroSolution(t *testing.T) {
	var problemHash chainhash.Hash
	if VerifyPoUWSolution(&problemHash, make([]byte, 31), 1) {
		t.Fatal("expected short solution to be rejected")
	}
	if VerifyPoUWSolution(&problemHash, make([]byte, 32), 1) {
		t.Fatal("expected all-zero solution to be rejected")
	}
}
