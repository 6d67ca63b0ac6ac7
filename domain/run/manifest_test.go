package run

import (
	"testing"

	"plsgo/domain/pls"
)

func TestManifestFingerprintDeterministic(t *testing.T) {
	opts := pls.DefaultOptions()

	a := NewManifest(pls.VariantMeanCenterTask, 42, opts, 10)
	b := NewManifest(pls.VariantMeanCenterTask, 42, opts, 250)

	// Runtime and identity differ; the determinism fingerprint must not.
	if a.Fingerprint != b.Fingerprint {
		t.Errorf("fingerprints differ: %s vs %s", a.Fingerprint, b.Fingerprint)
	}
	if a.RunID == b.RunID {
		t.Error("each manifest must carry a fresh run ID")
	}
	if len(a.Fingerprint) != 64 {
		t.Errorf("fingerprint must be a hex SHA-256 digest, got %q", a.Fingerprint)
	}
}

func TestManifestFingerprintSensitivity(t *testing.T) {
	opts := pls.DefaultOptions()
	base := NewManifest(pls.VariantMeanCenterTask, 42, opts, 0)

	if m := NewManifest(pls.VariantMeanCenterTask, 43, opts, 0); m.Fingerprint == base.Fingerprint {
		t.Error("seed change must change the fingerprint")
	}
	if m := NewManifest(pls.VariantBehavioral, 42, opts, 0); m.Fingerprint == base.Fingerprint {
		t.Error("variant change must change the fingerprint")
	}

	rotated := opts
	rotated.RotateMethod = pls.RotateProcrustes
	if m := NewManifest(pls.VariantMeanCenterTask, 42, rotated, 0); m.Fingerprint == base.Fingerprint {
		t.Error("rotation change must change the fingerprint")
	}
}

func TestManifestRecordsOptions(t *testing.T) {
	opts := pls.Options{
		NumPerm:      100,
		NumBoot:      200,
		RotateMethod: pls.RotateDerived,
		CIBounds:     [2]float64{0.025, 0.975},
	}
	m := NewManifest(pls.VariantBehavioral, 7, opts, 12)

	if m.NumPerm != 100 || m.NumBoot != 200 {
		t.Errorf("iteration counts not recorded: %d, %d", m.NumPerm, m.NumBoot)
	}
	if m.RotateMethod != int(pls.RotateDerived) {
		t.Errorf("rotation not recorded: %d", m.RotateMethod)
	}
	if m.CIBounds != [2]float64{0.025, 0.975} {
		t.Errorf("bounds not recorded: %v", m.CIBounds)
	}
	if m.RuntimeMs != 12 {
		t.Errorf("runtime not recorded: %d", m.RuntimeMs)
	}
	if m.CreatedAt.IsZero() {
		t.Error("created-at must be set")
	}
}
