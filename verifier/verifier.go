// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verifier implements the useful-work solution verification
// registry (component E): a dispatch layer mapping problem classes to
// class-specific verifiers, each producing a scored, structured verdict.
package verifier

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decred/slog"
)

// log is the package-level logger, following the teacher's per-subsystem
// logging convention. It defaults to discarding everything until a caller
// installs a real backend via UseLogger.
var log = slog.Disabled

// UseLogger installs logger as this package's logger, following the
// teacher's per-subsystem wiring; cmd/shuriumd calls this once at start
// with a logger obtained from internal/consensuslog.
func UseLogger(logger slog.Logger) { log = logger }

// ProblemType identifies the class of useful-work problem a Verifier
// handles.
type ProblemType uint8

// The set of problem classes this registry dispatches by default.
const (
	ProblemTypeHashPoW ProblemType = iota
	ProblemTypeMLTraining
	ProblemTypeLinearAlgebra
	ProblemTypeGeneric
)

func (pt ProblemType) String() string {
	switch pt {
	case ProblemTypeHashPoW:
		return "hash-pow"
	case ProblemTypeMLTraining:
		return "ml-training"
	case ProblemTypeLinearAlgebra:
		return "linear-algebra"
	case ProblemTypeGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// VerificationResult is the outcome of a verification attempt.
type VerificationResult uint8

// The result set from §6.
const (
	ResultValid VerificationResult = iota
	ResultInvalid
	ResultProblemNotFound
	ResultMalformed
	ResultTypeMismatch
	ResultTimeout
	ResultError
)

func (r VerificationResult) String() string {
	switch r {
	case ResultValid:
		return "VALID"
	case ResultInvalid:
		return "INVALID"
	case ResultProblemNotFound:
		return "PROBLEM_NOT_FOUND"
	case ResultMalformed:
		return "MALFORMED"
	case ResultTypeMismatch:
		return "TYPE_MISMATCH"
	case ResultTimeout:
		return "TIMEOUT"
	case ResultError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Problem describes a unit of useful work to be solved and later verified.
type Problem struct {
	ID                string
	Type              ProblemType
	Input             []byte
	VerificationData  []byte
	Hash              [32]byte
}

// SolutionData is the payload a solver reports for a Problem.
type SolutionData struct {
	Result             []byte
	ResultHash         [32]byte
	IntermediateHashes [][32]byte
	Iterations         uint64
	ReportedAccuracy   float64
}

// Solution binds a SolutionData to the Problem and solver that produced it.
type Solution struct {
	ID        string
	ProblemID string
	SolverID  string
	Data      SolutionData
}

// CheckResult names a single pass/fail check performed during Verify, in
// the order it was evaluated.
type CheckResult struct {
	Name string
	Pass bool
}

// VerificationDetails is the scored, structured verdict a Verifier
// produces.
type VerificationDetails struct {
	Result            VerificationResult
	Score             int64 // 0..1,000,000
	MeetsRequirements bool
	ElapsedMs         int64
	Checks            []CheckResult
}

// MaxScore is the upper bound of VerificationDetails.Score.
const MaxScore = 1_000_000

// allChecksPassed reports whether every check in checks passed.
func allChecksPassed(checks []CheckResult) bool {
	for _, c := range checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// Verifier is the capability set a class-specific verifier implements:
// a cheap structural pre-check, the full scored verification, a rough
// cost estimate, and self-identification for registry bookkeeping.
type Verifier interface {
	// QuickValidate rejects a mismatched problem type, an empty solution
	// result, or a problem-id mismatch, before any expensive work begins.
	QuickValidate(problem *Problem, solution *Solution) bool

	// Verify performs the full, scored verification.
	Verify(problem *Problem, solution *Solution) VerificationDetails

	// EstimateVerificationTime returns a rough cost estimate in
	// milliseconds, used by callers deciding whether to offload to the
	// async queue.
	EstimateVerificationTime(problem *Problem) int64

	// GetType reports the ProblemType this verifier handles.
	GetType() ProblemType
}

// RegistryStats holds the dispatcher's running counters. All fields are
// updated atomically and may be read from any goroutine.
type RegistryStats struct {
	TotalVerifications int64
	SuccessCount        int64
	FailCount           int64
	TotalTimeMs          int64
}

// SolutionVerifier is the process-wide dispatcher: a ProblemType -> Verifier
// map guarded by its own mutex, atomic running statistics, and a bounded
// submission queue for asynchronous verification.
//
// Locking discipline follows §5: the map mutex guards only the map itself;
// GetVerifier returns a handle callers must treat as immutable (replace,
// never mutate); no lock is held while a verifier's Verify runs.
type SolutionVerifier struct {
	mu        sync.RWMutex
	verifiers map[ProblemType]Verifier

	stats RegistryStats

	sem chan struct{} // bounds concurrent async verifications.
}

// NewSolutionVerifier returns a dispatcher with no verifiers registered and
// an async concurrency cap of maxConcurrent (at least 1).
func NewSolutionVerifier(maxConcurrent int) *SolutionVerifier {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &SolutionVerifier{
		verifiers: make(map[ProblemType]Verifier),
		sem:       make(chan struct{}, maxConcurrent),
	}
}

// RegisterVerifier installs v as the handler for its own GetType(),
// replacing any previously registered verifier for that type. Registration
// never mutates an already-registered verifier; it swaps the map entry.
func (s *SolutionVerifier) RegisterVerifier(v Verifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifiers[v.GetType()] = v
	log.Infof("registered verifier for problem type %s", v.GetType())
}

// GetVerifier returns the verifier registered for pt, if any. The returned
// handle must be treated as immutable by the caller.
func (s *SolutionVerifier) GetVerifier(pt ProblemType) (Verifier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.verifiers[pt]
	return v, ok
}

// Verify dispatches synchronously to the verifier registered for
// problem.Type, updating the registry's running statistics. An unknown
// problem type yields ResultTypeMismatch without consulting any verifier.
func (s *SolutionVerifier) Verify(problem *Problem, solution *Solution) VerificationDetails {
	v, ok := s.GetVerifier(problem.Type)
	if !ok {
		log.Warnf("no verifier registered for problem type %s", problem.Type)
		return VerificationDetails{Result: ResultTypeMismatch}
	}

	details := v.Verify(problem, solution)
	s.recordStats(details)
	return details
}

// recordStats updates the atomic running counters after a verification.
func (s *SolutionVerifier) recordStats(details VerificationDetails) {
	atomic.AddInt64(&s.stats.TotalVerifications, 1)
	atomic.AddInt64(&s.stats.TotalTimeMs, details.ElapsedMs)
	if details.Result == ResultValid && details.MeetsRequirements {
		atomic.AddInt64(&s.stats.SuccessCount, 1)
	} else {
		atomic.AddInt64(&s.stats.FailCount, 1)
	}
}

// Stats returns a snapshot of the registry's running counters.
func (s *SolutionVerifier) Stats() RegistryStats {
	return RegistryStats{
		TotalVerifications: atomic.LoadInt64(&s.stats.TotalVerifications),
		SuccessCount:        atomic.LoadInt64(&s.stats.SuccessCount),
		FailCount:           atomic.LoadInt64(&s.stats.FailCount),
		TotalTimeMs:          atomic.LoadInt64(&s.stats.TotalTimeMs),
	}
}

// SubmitAsync queues (problem, solution) for verification on the bounded
// worker pool, returning a channel that receives exactly one
// VerificationDetails once complete. Cancelling ctx before a worker slot is
// acquired yields ResultTimeout on the returned channel and never blocks
// the caller indefinitely; cancellation after verification begins has no
// effect, matching §5's "no cancellation of in-flight verification" rule.
func (s *SolutionVerifier) SubmitAsync(ctx context.Context, problem *Problem, solution *Solution) <-chan VerificationDetails {
	out := make(chan VerificationDetails, 1)

	go func() {
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			out <- VerificationDetails{Result: ResultTimeout}
			close(out)
			return
		}
		defer func() { <-s.sem }()

		out <- s.Verify(problem, solution)
		close(out)
	}()

	return out
}

// timedChecks runs fn, returning its checks alongside the elapsed time in
// milliseconds. Every class-specific verifier's Verify method uses this so
// ElapsedMs is measured uniformly.
func timedChecks(fn func() []CheckResult) ([]CheckResult, int64) {
	start := time.Now()
	checks := fn()
	elapsed := time.Since(start)
	return checks, elapsed.Milliseconds()
}
