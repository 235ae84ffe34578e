// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import (
	"crypto/sha256"
	"math"
)

// defaultMaxMagnitude bounds the absolute value of any reported float32
// weight a training solution may report.
const defaultMaxMagnitude = 1000.0

// maxIterations is the exclusive upper bound on the reported iteration
// count; together with Verify's > 0 check it bounds the count to the open
// interval (0, 1e9).
const maxIterations = 1_000_000_000

// tenMiB is the smallest result-size limit: a result may be up to the larger
// of 100 times the input size and tenMiB.
const tenMiB = 10 * 1024 * 1024

// accuracyBand is the fractional tolerance between a solution's reported
// accuracy and the verifier's hash-derived consistency value.
const accuracyBand = 0.10

// cappedDerivedAccuracy is the ceiling applied when a reported accuracy
// falls outside the tolerance band and the derived value is substituted.
const cappedDerivedAccuracy = 0.95

// MLTrainingVerifier checks solutions that report serialized float32
// model weights from a training run.
type MLTrainingVerifier struct {
	MaxMagnitude float64
}

// NewMLTrainingVerifier returns a ready-to-register MLTrainingVerifier
// using the default magnitude bound.
func NewMLTrainingVerifier() *MLTrainingVerifier {
	return &MLTrainingVerifier{MaxMagnitude: defaultMaxMagnitude}
}

// GetType is part of the Verifier interface.
func (v *MLTrainingVerifier) GetType() ProblemType { return ProblemTypeMLTraining }

// EstimateVerificationTime is part of the Verifier interface. Scanning
// every float32 element and folding the hash chain is linear in the
// result size; the estimate scales with the problem's input size, one
// millisecond per million input bytes on top of a base of one.
func (v *MLTrainingVerifier) EstimateVerificationTime(problem *Problem) int64 {
	return 1 + int64(len(problem.Input)/1_000_000)
}

// QuickValidate is part of the Verifier interface.
func (v *MLTrainingVerifier) QuickValidate(problem *Problem, solution *Solution) bool {
	if problem == nil || solution == nil {
		return false
	}
	if problem.Type != ProblemTypeMLTraining {
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
func (v *MLTrainingVerifier) Verify(problem *Problem, solution *Solution) VerificationDetails {
	maxMagnitude := v.MaxMagnitude
	if maxMagnitude <= 0 {
		maxMagnitude = defaultMaxMagnitude
	}

	checks, elapsedMs := timedChecks(func() []CheckResult {
		result := solution.Data.Result
		inputSize := len(problem.Input)

		lengthOK := len(result) > 0 && (len(result)%4 == 0 || len(result)%8 == 0)

		noNaNInf := true
		magnitudeOK := true
		if len(result)%4 == 0 {
			for i := 0; i+4 <= len(result); i += 4 {
				bits := uint32(result[i]) | uint32(result[i+1])<<8 |
					uint32(result[i+2])<<16 | uint32(result[i+3])<<24
				exponent := (bits >> 23) & 0xFF
				if exponent == 0xFF {
					noNaNInf = false
				}
				f := math.Float32frombits(bits)
				if math.Abs(float64(f)) > maxMagnitude {
					magnitudeOK = false
				}
			}
		} else {
			noNaNInf = false
			magnitudeOK = false
		}

		iterationsOK := solution.Data.Iterations > 0 && solution.Data.Iterations < maxIterations

		maxResultSize := 100 * inputSize
		if maxResultSize < tenMiB {
			maxResultSize = tenMiB
		}
		sizeOK := len(result) > 0 && len(result) <= maxResultSize

		chainOK := verifyHashChain(solution.Data.IntermediateHashes, solution.Data.ResultHash)

		return []CheckResult{
			{Name: "length-multiple-of-4-or-8", Pass: lengthOK},
			{Name: "no-nan-or-inf", Pass: noNaNInf},
			{Name: "magnitude-bounded", Pass: magnitudeOK},
			{Name: "iteration-count-bounded", Pass: iterationsOK},
			{Name: "result-size-bounded", Pass: sizeOK},
			{Name: "hash-chain-valid", Pass: chainOK},
		}
	})

	passed := allChecksPassed(checks)
	result := ResultInvalid
	if passed {
		result = ResultValid
	}

	derived := derivedAccuracy(solution.Data.Result, problem.VerificationData)
	effectiveAccuracy := solution.Data.ReportedAccuracy
	if math.Abs(effectiveAccuracy-derived) > accuracyBand*derived && derived > 0 {
		effectiveAccuracy = math.Min(derived, cappedDerivedAccuracy)
	}

	score := int64(0)
	if passed {
		score = int64(effectiveAccuracy * MaxScore)
		if score > MaxScore {
			score = MaxScore
		}
		if score < 0 {
			score = 0
		}
	}

	return VerificationDetails{
		Result:            result,
		Score:             score,
		MeetsRequirements: passed,
		ElapsedMs:         elapsedMs,
		Checks:            checks,
	}
}

// verifyHashChain folds chain[i] = SHA256(chain[i-1] || intermediate[i])
// from a zero seed and reports whether the final link shares its leading
// byte with resultHash — a cheap, probabilistic anti-triviality check that
// a genuine intermediate chain was computed rather than fabricated.
func verifyHashChain(intermediates [][32]byte, resultHash [32]byte) bool {
	if len(intermediates) == 0 {
		return false
	}

	var chain [32]byte // zero seed.
	for _, link := range intermediates {
		buf := make([]byte, 0, 64)
		buf = append(buf, chain[:]...)
		buf = append(buf, link[:]...)
		chain = sha256.Sum256(buf)
	}

	return chain[0] == resultHash[0]
}

// derivedAccuracy folds SHA256(weights) and SHA256(verificationData) into a
// deterministic value in [0, 1], used as the reference a solution's
// reported accuracy is checked against.
func derivedAccuracy(weights, verificationData []byte) float64 {
	weightsHash := sha256.Sum256(weights)
	dataHash := sha256.Sum256(verificationData)

	var combined byte
	for i := range weightsHash {
		combined ^= weightsHash[i] ^ dataHash[i]
	}

	return float64(combined) / 255.0
}
