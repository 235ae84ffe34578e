// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import "crypto/sha256"

// GenericVerifier performs only the structural checks common to every
// problem class; it is the fallback for problem classes with no
// class-specific verifier registered.
type GenericVerifier struct{}

// NewGenericVerifier returns a ready-to-register GenericVerifier.
func NewGenericVerifier() *GenericVerifier { return &GenericVerifier{} }

// GetType is part of the Verifier interface.
func (v *GenericVerifier) GetType() ProblemType { return ProblemTypeGeneric }

// EstimateVerificationTime is part of the Verifier interface.
func (v *GenericVerifier) EstimateVerificationTime(problem *Problem) int64 { return 1 }

// QuickValidate is part of the Verifier interface.
func (v *GenericVerifier) QuickValidate(problem *Problem, solution *Solution) bool {
	if problem == nil || solution == nil {
		return false
	}
	if problem.Type != ProblemTypeGeneric {
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
func (v *GenericVerifier) Verify(problem *Problem, solution *Solution) VerificationDetails {
	checks, elapsedMs := timedChecks(func() []CheckResult {
		nonEmpty := len(solution.Data.Result) > 0
		actualHash := sha256.Sum256(solution.Data.Result)
		hashMatches := actualHash == solution.Data.ResultHash
		solverSet := solution.SolverID != ""
		boundToProblem := solution.ProblemID == problem.ID

		return []CheckResult{
			{Name: "result-non-empty", Pass: nonEmpty},
			{Name: "result-hash-matches", Pass: hashMatches},
			{Name: "solver-id-present", Pass: solverSet},
			{Name: "problem-id-bound", Pass: boundToProblem},
		}
	})

	passed := allChecksPassed(checks)
	result := ResultInvalid
	score := int64(0)
	if passed {
		result = ResultValid
		score = MaxScore
	}

	return VerificationDetails{
		Result:            result,
		Score:             score,
		MeetsRequirements: passed,
		ElapsedMs:         elapsedMs,
		Checks:            checks,
	}
}
