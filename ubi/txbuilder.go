// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import (
	"bytes"

	"github.com/decred/dcrd/txscript/v4"
	"github.com/decred/dcrd/txscript/v4/stdscript"
	"github.com/decred/dcrd/wire"
)

// UBITransactionBuilder constructs and inspects the coinbase-style output
// that pays out a successful UBI claim. §9's open question notes that a
// recipient could in principle be a witness program rather than a
// pay-to-public-key-hash address; this builder always emits the standard
// P2PKH form, leaving that decision to the transaction-format layer that
// wraps it.
type UBITransactionBuilder struct{}

// NewUBITransactionBuilder returns a ready-to-use builder. It holds no
// state: every method is a pure function of its arguments.
func NewUBITransactionBuilder() *UBITransactionBuilder { return &UBITransactionBuilder{} }

// BuildClaimOutputs returns a single standard pay-to-public-key-hash
// output paying amount to claim.Recipient.
func (b *UBITransactionBuilder) BuildClaimOutputs(claim UBIClaim, amount int64) ([]*wire.TxOut, error) {
	script, err := payToPubKeyHashScript(claim.Recipient)
	if err != nil {
		return nil, err
	}

	return []*wire.TxOut{
		{
			Value:    amount,
			PkScript: script,
		},
	}, nil
}

// VerifyClaimOutputs reports whether outputs contains a standard
// pay-to-public-key-hash output matching claim.Recipient with positive
// value.
func (b *UBITransactionBuilder) VerifyClaimOutputs(claim UBIClaim, outputs []*wire.TxOut) bool {
	for _, out := range outputs {
		if out.Value <= 0 {
			continue
		}
		hash := stdscript.ExtractPubKeyHashV0(out.PkScript)
		if hash != nil && bytes.Equal(hash, claim.Recipient[:]) {
			return true
		}
	}
	return false
}

// payToPubKeyHashScript builds OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY
// OP_CHECKSIG for the given 20-byte hash.
func payToPubKeyHashScript(hash [20]byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(hash[:]).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}
