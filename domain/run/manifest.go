package run

import (
	"fmt"

	"plsgo/domain/core"
	"plsgo/domain/pls"
)

// Manifest is the truth source for replaying an analysis: every parameter
// that determines the resample results, plus a fingerprint over them. Two
// runs with the same fingerprint produce bit-identical output.
type Manifest struct {
	RunID        core.RunID     `json:"run_id"`
	Variant      pls.Variant    `json:"variant"`
	Seed         int64          `json:"seed"`
	NumPerm      int            `json:"num_perm"`
	NumBoot      int            `json:"num_boot"`
	RotateMethod int            `json:"rotate_method"`
	CIBounds     [2]float64     `json:"ci_bounds"`
	RuntimeMs    int64          `json:"runtime_ms"`
	Fingerprint  core.Hash      `json:"fingerprint"`
	CreatedAt    core.Timestamp `json:"created_at"`
}

// NewManifest records the determinism parameters of a completed run.
func NewManifest(variant pls.Variant, seed int64, opts pls.Options, runtimeMs int64) Manifest {
	return Manifest{
		RunID:        core.NewRunID(),
		Variant:      variant,
		Seed:         seed,
		NumPerm:      opts.NumPerm,
		NumBoot:      opts.NumBoot,
		RotateMethod: int(opts.RotateMethod),
		CIBounds:     opts.CIBounds,
		RuntimeMs:    runtimeMs,
		Fingerprint:  computeFingerprint(variant, seed, opts),
		CreatedAt:    core.Now(),
	}
}

// computeFingerprint hashes the parameters that determine the resample
// results. Runtime and timestamps stay out of the hash.
func computeFingerprint(variant pls.Variant, seed int64, opts pls.Options) core.Hash {
	data := fmt.Sprintf("variant:%s|seed:%d|num_perm:%d|num_boot:%d|rotate:%d|ci:%g,%g",
		variant, seed, opts.NumPerm, opts.NumBoot, int(opts.RotateMethod),
		opts.CIBounds[0], opts.CIBounds[1])
	return core.NewHash([]byte(data))
}
