// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// shuriumd is the process wiring for the Shurium consensus core: it
// selects a network, constructs the verifier registry and UBI
// distributor, and opens the persistent store. It does not listen on
// the network, does not serve RPC, and does not parse wallet commands;
// those layers live outside this core.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/shurium/shurium/chaincfg"
	"github.com/shurium/shurium/difficulty"
	"github.com/shurium/shurium/internal/consensuslog"
	"github.com/shurium/shurium/pouw"
	"github.com/shurium/shurium/store"
	"github.com/shurium/shurium/ubi"
	"github.com/shurium/shurium/verifier"
)

// maxConcurrentVerifications bounds the async verification worker pool,
// following the teacher's convention of sizing concurrency caps as a
// fixed constant rather than exposing a flag for every tunable.
const maxConcurrentVerifications = 8

// options are the flags this daemon accepts, mirroring the shape of the
// teacher's own config struct: network-selection booleans plus a
// datadir, nothing more, since this core has no net/RPC/wallet layer to
// configure.
type options struct {
	DataDir string `long:"datadir" description:"Directory to store data" default:"~/.shurium"`
	TestNet bool   `long:"testnet" description:"Use the test network"`
	SimNet  bool   `long:"simnet" description:"Use the simulation test network"`
	Debug   string `long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`
}

// netParams resolves opts' network-selection flags to a chaincfg.Params
// and the directory name the teacher's own daemons use per-network, to
// keep mainnet/testnet/simnet data from colliding under the same
// datadir.
func netParams(opts *options) (*chaincfg.Params, string, error) {
	switch {
	case opts.TestNet && opts.SimNet:
		return nil, "", fmt.Errorf("the testnet and simnet flags cannot be used together")
	case opts.TestNet:
		return chaincfg.TestNetParams(), "testnet", nil
	case opts.SimNet:
		return chaincfg.SimNetParams(), "simnet", nil
	default:
		return chaincfg.MainNetParams(), "mainnet", nil
	}
}

// newVerifierRegistry returns a verifier.SolutionVerifier pre-populated
// with the four built-in verifiers, exactly as §4.E names them.
func newVerifierRegistry() *verifier.SolutionVerifier {
	reg := verifier.NewSolutionVerifier(maxConcurrentVerifications)
	reg.RegisterVerifier(verifier.NewHashPoWVerifier())
	reg.RegisterVerifier(verifier.NewMLTrainingVerifier())
	reg.RegisterVerifier(verifier.NewLinearAlgebraVerifier())
	reg.RegisterVerifier(verifier.NewGenericVerifier())
	return reg
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	params, netDir, err := netParams(&opts)
	if err != nil {
		return err
	}

	level, ok := consensuslog.ParseLevel(opts.Debug)
	if !ok {
		return fmt.Errorf("unknown debug level %q", opts.Debug)
	}
	for _, subsystem := range []string{"POUW", "VRFY", "UBID", "STOR", "DIFF"} {
		consensuslog.SetLevel(subsystem, level)
	}
	pouw.UseLogger(consensuslog.Logger("POUW"))
	verifier.UseLogger(consensuslog.Logger("VRFY"))
	ubi.UseLogger(consensuslog.Logger("UBID"))
	store.UseLogger(consensuslog.Logger("STOR"))
	difficulty.UseLogger(consensuslog.Logger("DIFF"))

	dataDir, err := expandDataDir(opts.DataDir, netDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	log := consensuslog.Logger("SHRD")
	log.Infof("shuriumd starting, network %s, datadir %s", params.Name, dataDir)

	reg := newVerifierRegistry()

	st, err := store.Open(filepath.Join(dataDir, "ubi"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	distributor, err := st.LoadDistributor(params)
	if err != nil {
		if err != store.ErrNoSnapshot {
			return fmt.Errorf("loading persisted distributor state: %w", err)
		}
		log.Infof("no persisted distributor snapshot found, starting fresh")
		distributor = ubi.NewUBIDistributor(params)
	} else {
		log.Infof("restored distributor snapshot, total claims %d", distributor.TotalClaims())
	}

	stats := reg.Stats()
	log.Infof("shuriumd ready: %d verifiers warm, %d total claims recorded, %d verifications to date",
		4, distributor.TotalClaims(), stats.TotalVerifications)
	return nil
}

// expandDataDir joins base (which may start with "~/") with the
// network-specific subdirectory, matching the teacher's convention of
// keeping each network's state in its own directory under a shared
// datadir root.
func expandDataDir(base, netDir string) (string, error) {
	if len(base) >= 2 && base[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, base[2:])
	}
	return filepath.Join(base, netDir), nil
}
