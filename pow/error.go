// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import "errors"

var (
	// ErrNegativeTarget indicates a compact target had its sign bit set,
	// which is never valid for a proof-of-work target.
	ErrNegativeTarget = errors.New("pow: compact target has sign bit set")

	// ErrTargetSizeTooLarge indicates a compact target's size byte exceeded
	// MaxCompactSize and therefore cannot be expanded into 256 bits.
	ErrTargetSizeTooLarge = errors.New("pow: compact target size exceeds maximum")

	// ErrUnexpectedDifficulty indicates the target difficulty is either
	// zero, negative, or larger than the network's proof-of-work limit.
	ErrUnexpectedDifficulty = errors.New("pow: target difficulty out of range")

	// ErrHighHash indicates a block hash does not satisfy the required
	// proof-of-work target.
	ErrHighHash = errors.New("pow: block hash is higher than expected target")
)
