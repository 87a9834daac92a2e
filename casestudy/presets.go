package casestudy

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ModelTypeWGS    = "WGS"
	ModelTypeWES    = "WES"
	ModelTypePacBio = "PACBIO"
	ModelTypeHybrid = "HYBRID_PACBIO_ILLUMINA"
)

// Preset bundles the model type and default dataset locations for one of the
// published HG003 benchmark configurations. Presets are read-only; Resolve
// copies values into a RunConfig without ever touching a field the user
// already set.
type Preset struct {
	ModelType   string
	Bam         string
	BamIndex    string
	Ref         string
	RefIndexes  []string
	TruthVCF    string
	TruthBED    string
	CaptureBed  string
	Description string
}

const (
	grch38Ref     = "gs://deepvariant/case-study-testdata/GRCh38_no_alt_analysis_set.fasta.gz"
	giabHG003Base = "https://ftp-trace.ncbi.nlm.nih.gov/giab/ftp/release/AshkenazimTrio/HG003_NA24149_father/NISTv4.2.1/GRCh38"
	hg003TruthVCF = giabHG003Base + "/HG003_GRCh38_1_22_v4.2.1_benchmark.vcf.gz"
	hg003TruthBED = giabHG003Base + "/HG003_GRCh38_1_22_v4.2.1_benchmark_noinconsistent.bed"
)

var grch38RefIndexes = []string{
	grch38Ref + ".fai",
	grch38Ref + ".gzi",
}

var presets = map[string]Preset{
	"WGS": {
		ModelType:   ModelTypeWGS,
		Bam:         "gs://deepvariant/case-study-testdata/HG003.novaseq.pcr-free.35x.dedup.grch38_noalt.bam",
		BamIndex:    "gs://deepvariant/case-study-testdata/HG003.novaseq.pcr-free.35x.dedup.grch38_noalt.bam.bai",
		Ref:         grch38Ref,
		RefIndexes:  grch38RefIndexes,
		TruthVCF:    hg003TruthVCF,
		TruthBED:    hg003TruthBED,
		Description: "HG003 NovaSeq PCR-free 35x whole genome",
	},
	"WES": {
		ModelType:   ModelTypeWES,
		Bam:         "gs://deepvariant/exome-case-study-testdata/HG003.novaseq.wes_idt.100x.dedup.bam",
		BamIndex:    "gs://deepvariant/exome-case-study-testdata/HG003.novaseq.wes_idt.100x.dedup.bam.bai",
		Ref:         grch38Ref,
		RefIndexes:  grch38RefIndexes,
		TruthVCF:    hg003TruthVCF,
		TruthBED:    hg003TruthBED,
		CaptureBed:  "gs://deepvariant/exome-case-study-testdata/idt_capture_novogene.grch38.bed",
		Description: "HG003 IDT exome capture 100x",
	},
	"PACBIO": {
		ModelType:   ModelTypePacBio,
		Bam:         "gs://deepvariant/pacbio-case-study-testdata/HG003.pfda_challenge.grch38.phased.bam",
		BamIndex:    "gs://deepvariant/pacbio-case-study-testdata/HG003.pfda_challenge.grch38.phased.bam.bai",
		Ref:         grch38Ref,
		RefIndexes:  grch38RefIndexes,
		TruthVCF:    hg003TruthVCF,
		TruthBED:    hg003TruthBED,
		Description: "HG003 PacBio HiFi 35x, haplotype phased",
	},
	"HYBRID_PACBIO_ILLUMINA": {
		ModelType:   ModelTypeHybrid,
		Bam:         "gs://deepvariant/hybrid-case-study-testdata/HG003_hybrid_35x_ilmn_35x_pacb.grch38.phased.bam",
		BamIndex:    "gs://deepvariant/hybrid-case-study-testdata/HG003_hybrid_35x_ilmn_35x_pacb.grch38.phased.bam.bai",
		Ref:         grch38Ref,
		RefIndexes:  grch38RefIndexes,
		TruthVCF:    hg003TruthVCF,
		TruthBED:    hg003TruthBED,
		Description: "HG003 hybrid Illumina 35x + PacBio 35x",
	},
}

// PresetNames returns the supported preset names, sorted.
func PresetNames() []string {
	names := maps.Keys(presets)
	slices.Sort(names)
	return names
}

// ResolvePreset fills the config's empty dataset fields from the named
// preset. Fields the user supplied explicitly are left untouched. An empty
// preset name is fully manual mode and passes straight through; an unknown
// name is an error.
func ResolvePreset(cfg *RunConfig) error {
	if cfg.ModelPreset == "" {
		return nil
	}
	preset, ok := presets[cfg.ModelPreset]
	if !ok {
		return fmt.Errorf("unknown model preset %q, choose one of: %s",
			cfg.ModelPreset, strings.Join(PresetNames(), ", "))
	}

	if cfg.ModelType == "" {
		cfg.ModelType = preset.ModelType
	}
	if cfg.Bam == "" {
		cfg.Bam = preset.Bam
		cfg.BamIndex = preset.BamIndex
	}
	if cfg.Ref == "" {
		cfg.Ref = preset.Ref
		cfg.RefIndexes = append([]string(nil), preset.RefIndexes...)
	}
	if cfg.TruthVCF == "" {
		cfg.TruthVCF = preset.TruthVCF
	}
	if cfg.TruthBED == "" {
		cfg.TruthBED = preset.TruthBED
	}
	if cfg.CaptureBed == "" {
		cfg.CaptureBed = preset.CaptureBed
	}
	return nil
}
