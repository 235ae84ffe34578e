// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"testing"
)

func packFloat32LE(vals []float32) []byte {
	buf := make([]byte, len(vals)*4)
	for i, f := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(f))
	}
	return buf
}

// denseLAProblem builds a 2x2 * 2x2 dense float32 matrix-multiply problem
// whose result is computed directly, so Verify's spot-check recomputation
// matches exactly.
func denseLAProblem(problemID string) (*Problem, *Solution) {
	header := make([]byte, 16)
	binary.LittleEndian.PutUint32(header[0:4], 2)  // rowsA
	binary.LittleEndian.PutUint32(header[4:8], 2)  // colsA
	binary.LittleEndian.PutUint32(header[8:12], 2) // rowsB
	binary.LittleEndian.PutUint32(header[12:16], 2) // colsB

	a := []float32{1, 2, 3, 4} // [[1,2],[3,4]]
	b := []float32{5, 6, 7, 8} // [[5,6],[7,8]]
	result := []float32{19, 22, 43, 50}

	input := append(append(append([]byte{}, header...), packFloat32LE(a)...), packFloat32LE(b)...)
	resultBytes := packFloat32LE(result)
	hash := sha256.Sum256(resultBytes)

	problem := &Problem{ID: problemID, Type: ProblemTypeLinearAlgebra, Input: input}
	solution := &Solution{
		ProblemID: problemID,
		Data:      SolutionData{Result: resultBytes, ResultHash: hash},
	}
	return problem, solution
}

func TestLinearAlgebraVerifyDenseValid(t *testing.T) {
	v := NewLinearAlgebraVerifier()
	problem, solution := denseLAProblem("p1")

	details := v.Verify(problem, solution)
	if details.Result != ResultValid {
		t.Fatalf("result = %v, want ResultValid; checks=%+v", details.Result, details.Checks)
	}
	if details.Score != MaxScore {
		t.Fatalf("score = %d, want %d for a dense spot-checked result", details.Score, MaxScore)
	}
	if !details.MeetsRequirements {
		t.Fatal("expected MeetsRequirements to be true")
	}
}

func TestLinearAlgebraVerifyIncompatibleDimensions(t *testing.T) {
	v := NewLinearAlgebraVerifier()
	problem, solution := denseLAProblem("p1")

	// colsA (2) must equal rowsB for compatibility; break it.
	binary.LittleEndian.PutUint32(problem.Input[4:8], 3)

	details := v.Verify(problem, solution)
	if details.Result != ResultInvalid {
		t.Fatalf("result = %v, want ResultInvalid", details.Result)
	}
}

func TestLinearAlgebraVerifyWrongResultSize(t *testing.T) {
	v := NewLinearAlgebraVerifier()
	problem, solution := denseLAProblem("p1")
	solution.Data.Result = solution.Data.Result[:len(solution.Data.Result)-4]

	details := v.Verify(problem, solution)
	if details.Result != ResultInvalid {
		t.Fatalf("result = %v, want ResultInvalid", details.Result)
	}
}

func TestLinearAlgebraVerifyHashMismatch(t *testing.T) {
	v := NewLinearAlgebraVerifier()
	problem, solution := denseLAProblem("p1")
	solution.Data.ResultHash[0] ^= 0xFF

	details := v.Verify(problem, solution)
	if details.Result != ResultInvalid {
		t.Fatalf("result = %v, want ResultInvalid", details.Result)
	}
}

func TestLinearAlgebraVerifySpotCheckCatchesBadElement(t *testing.T) {
	v := NewLinearAlgebraVerifier()
	problem, solution := denseLAProblem("p1")

	// Corrupt every result element but keep the hash in sync with the
	// corrupted bytes, so only the spot-check (not the hash check) can
	// catch it — corrupting all four elements means whichever indices the
	// hash-derived spot-check happens to pick, it will find a mismatch.
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(solution.Data.Result[i*4:i*4+4], math.Float32bits(999))
	}
	solution.Data.ResultHash = sha256.Sum256(solution.Data.Result)

	details := v.Verify(problem, solution)
	if details.Result != ResultInvalid {
		t.Fatalf("result = %v, want ResultInvalid (spot-check should catch the corrupted element)", details.Result)
	}
}

func TestLinearAlgebraVerifySparseSkipsSpotCheckButScoresLower(t *testing.T) {
	v := NewLinearAlgebraVerifier()
	problem, solution := denseLAProblem("p1")

	// Truncate the input body so denseOperands can no longer recover dense
	// A and B, forcing the hash-only (sparse) branch.
	problem.Input = problem.Input[:16+4]

	details := v.Verify(problem, solution)
	if details.Result != ResultValid {
		t.Fatalf("result = %v, want ResultValid (hash-only branch); checks=%+v", details.Result, details.Checks)
	}
	if details.Score != linearAlgebraScoreFloor {
		t.Fatalf("score = %d, want %d (sparse floor)", details.Score, linearAlgebraScoreFloor)
	}
}

func TestParseMatrixDimsRejectsOversizedDimension(t *testing.T) {
	header := make([]byte, 16)
	binary.LittleEndian.PutUint32(header[0:4], maxMatrixDimension+1)
	binary.LittleEndian.PutUint32(header[4:8], 1)
	binary.LittleEndian.PutUint32(header[8:12], 1)
	binary.LittleEndian.PutUint32(header[12:16], 1)

	_, ok := parseMatrixDims(header)
	if ok {
		t.Fatal("expected an oversized dimension to be rejected")
	}
}

func TestParseMatrixDimsRejectsZero(t *testing.T) {
	header := make([]byte, 16)
	binary.LittleEndian.PutUint32(header[0:4], 0)
	binary.LittleEndian.PutUint32(header[4:8], 1)
	binary.LittleEndian.PutUint32(header[8:12], 1)
	binary.LittleEndian.PutUint32(header[12:16], 1)

	_, ok := parseMatrixDims(header)
	if ok {
		t.Fatal("expected a zero dimension to be rejected")
	}
}
