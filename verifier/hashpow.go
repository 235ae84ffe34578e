// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import (
	"crypto/sha256"
	"encoding/binary"
)

// HashPoWVerifier checks solutions to hash-based proof-of-work problems:
// the problem's input begins with a 32-byte target, and a solution is
// valid iff its reported result hashes below that target and the reported
// hash is genuine.
type HashPoWVerifier struct{}

// NewHashPoWVerifier returns a ready-to-register HashPoWVerifier.
func NewHashPoWVerifier() *HashPoWVerifier { return &HashPoWVerifier{} }

// GetType is part of the Verifier interface.
func (v *HashPoWVerifier) GetType() ProblemType { return ProblemTypeHashPoW }

// EstimateVerificationTime is part of the Verifier interface. A single
// SHA256 and a fixed-width comparison are both sub-millisecond.
func (v *HashPoWVerifier) EstimateVerificationTime(problem *Problem) int64 { return 1 }

// QuickValidate is part of the Verifier interface.
func (v *HashPoWVerifier) QuickValidate(problem *Problem, solution *Solution) bool {
	if problem == nil || solution == nil {
		return false
	}
	if problem.Type != ProblemTypeHashPoW {
		return false
	}
	if len(solution.Data.Result) == 0 {
		return false
	}
	if solution.ProblemID != problem.ID {
		return false
	}
	return true
}

// Verify is part of the Verifier interface.
func (v *HashPoWVerifier) Verify(problem *Problem, solution *Solution) VerificationDetails {
	var target [32]byte
	checks, elapsedMs := timedChecks(func() []CheckResult {
		if len(problem.Input) < 32 {
			return []CheckResult{{Name: "has-target-prefix", Pass: false}}
		}
		copy(target[:], problem.Input[:32])

		belowTarget := compareLE256(solution.Data.ResultHash, target) < 0
		actualHash := sha256.Sum256(solution.Data.Result)
		hashMatches := actualHash == solution.Data.ResultHash

		return []CheckResult{
			{Name: "result-below-target", Pass: belowTarget},
			{Name: "result-hash-matches", Pass: hashMatches},
		}
	})

	passed := allChecksPassed(checks)
	result := ResultInvalid
	if passed {
		result = ResultValid
	}

	score := scoreHashPoW(target, solution.Data.ResultHash)

	return VerificationDetails{
		Result:            result,
		Score:             score,
		MeetsRequirements: passed,
		ElapsedMs:         elapsedMs,
		Checks:            checks,
	}
}

// scoreHashPoW computes (targetPrefix - hashPrefix) / targetPrefix * 1e6
// using the first 8 bytes of each, interpreted little-endian, clamped to
// [0, MaxScore].
func scoreHashPoW(target, resultHash [32]byte) int64 {
	targetPrefix := binary.LittleEndian.Uint64(target[:8])
	hashPrefix := binary.LittleEndian.Uint64(resultHash[:8])

	if targetPrefix == 0 {
		return 0
	}
	if hashPrefix >= targetPrefix {
		return 0
	}

	diff := targetPrefix - hashPrefix
	score := int64(float64(diff) / float64(targetPrefix) * MaxScore)
	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// compareLE256 compares a and b as 32-byte little-endian unsigned
// integers (byte 31 most significant), matching the Hash256 comparison
// rule in §3: it returns -1, 0, or 1.
func compareLE256(a, b [32]byte) int {
	for i := 31; i >= 0; i-- {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
