package casestudy

import (
	"strings"
	"testing"
)

func TestResolvePresetKeepsExplicitFields(t *testing.T) {
	for _, name := range PresetNames() {
		cfg := RunConfig{
			ModelPreset: name,
			Bam:         "my_reads.bam",
			Ref:         "my_ref.fasta",
			TruthVCF:    "my_truth.vcf.gz",
		}
		if err := ResolvePreset(&cfg); err != nil {
			t.Fatalf("preset %s: unexpected error: %v", name, err)
		}
		if cfg.Bam != "my_reads.bam" {
			t.Errorf("preset %s overwrote explicit bam: %s", name, cfg.Bam)
		}
		if cfg.Ref != "my_ref.fasta" {
			t.Errorf("preset %s overwrote explicit ref: %s", name, cfg.Ref)
		}
		if cfg.TruthVCF != "my_truth.vcf.gz" {
			t.Errorf("preset %s overwrote explicit truth_vcf: %s", name, cfg.TruthVCF)
		}
		if cfg.TruthBED == "" {
			t.Errorf("preset %s did not fill empty truth_bed", name)
		}
		if cfg.ModelType == "" {
			t.Errorf("preset %s did not fill model type", name)
		}
	}
}

func TestResolvePresetFillsDefaults(t *testing.T) {
	wantTypes := map[string]string{
		"WGS":                    ModelTypeWGS,
		"WES":                    ModelTypeWES,
		"PACBIO":                 ModelTypePacBio,
		"HYBRID_PACBIO_ILLUMINA": ModelTypeHybrid,
	}
	for name, wantType := range wantTypes {
		cfg := RunConfig{ModelPreset: name}
		if err := ResolvePreset(&cfg); err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if cfg.ModelType != wantType {
			t.Errorf("preset %s: model type = %s, want %s", name, cfg.ModelType, wantType)
		}
		if cfg.Bam == "" || cfg.Ref == "" || cfg.TruthVCF == "" || cfg.TruthBED == "" {
			t.Errorf("preset %s left a dataset field empty: %+v", name, cfg)
		}
		if cfg.BamIndex == "" || len(cfg.RefIndexes) == 0 {
			t.Errorf("preset %s missing index locations", name)
		}
	}

	wes := RunConfig{ModelPreset: "WES"}
	if err := ResolvePreset(&wes); err != nil {
		t.Fatal(err)
	}
	if wes.CaptureBed == "" {
		t.Error("WES preset did not fill capture bed")
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	cfg := RunConfig{ModelPreset: "FOO"}
	err := ResolvePreset(&cfg)
	if err == nil {
		t.Fatal("expected error for unknown preset FOO")
	}
	if !strings.Contains(err.Error(), "FOO") {
		t.Errorf("error does not name the bad preset: %v", err)
	}
	for _, name := range PresetNames() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error does not list known preset %s: %v", name, err)
		}
	}
}

func TestResolveEmptyPresetPassesThrough(t *testing.T) {
	cfg := RunConfig{ModelType: ModelTypePacBio, Ref: "r.fa", Bam: "r.bam"}
	if err := ResolvePreset(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Ref != "r.fa" || cfg.Bam != "r.bam" || cfg.ModelType != ModelTypePacBio {
		t.Errorf("manual mode fields changed: %+v", cfg)
	}
	if cfg.TruthVCF != "" {
		t.Errorf("manual mode filled truth_vcf from nowhere: %s", cfg.TruthVCF)
	}
}
