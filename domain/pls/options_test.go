package pls

import (
	"testing"

	"plsgo/domain/core"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("default options must validate: %v", err)
	}
	if opts.NumPerm != 1000 || opts.NumBoot != 1000 {
		t.Errorf("unexpected iteration defaults: %d, %d", opts.NumPerm, opts.NumBoot)
	}
	if opts.RotateMethod != RotateNone {
		t.Errorf("unexpected rotation default: %v", opts.RotateMethod)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"valid", func(o *Options) {}, false},
		{"zero permutations", func(o *Options) { o.NumPerm = 0 }, true},
		{"zero bootstraps", func(o *Options) { o.NumBoot = 0 }, true},
		{"negative lower", func(o *Options) { o.CIBounds = [2]float64{-0.1, 0.95} }, true},
		{"upper above one", func(o *Options) { o.CIBounds = [2]float64{0.05, 1.1} }, true},
		{"inverted bounds", func(o *Options) { o.CIBounds = [2]float64{0.9, 0.1} }, true},
		{"degenerate bounds", func(o *Options) { o.CIBounds = [2]float64{0.5, 0.5} }, false},
		{"negative concurrency", func(o *Options) { o.Concurrency = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr && !core.IsConfigError(err) {
				t.Errorf("expected config error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestVariantCheckKnown(t *testing.T) {
	if err := VariantMeanCenterTask.CheckKnown(); err != nil {
		t.Errorf("mct must be recognized: %v", err)
	}
	if err := VariantMultiblock.CheckKnown(); err != nil {
		t.Errorf("mb must be recognized even though unimplemented: %v", err)
	}

	err := Variant("bogus").CheckKnown()
	if !core.IsConfigError(err) {
		t.Errorf("expected config error for unknown tag, got %v", err)
	}
}

func TestRotateMethodString(t *testing.T) {
	if RotateProcrustes.String() != "procrustes" {
		t.Errorf("unexpected name: %s", RotateProcrustes)
	}
	if RotateMethod(9).String() != "rotate(9)" {
		t.Errorf("unexpected fallback name: %s", RotateMethod(9))
	}
}
