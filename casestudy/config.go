package casestudy

import (
	"fmt"
	"runtime"
	"strings"
)

// RunConfig is the resolved set of options for one case-study run. It is
// populated from flags (and optionally a config file), passed through
// ResolvePreset and Validate once, and treated as read-only afterwards: every
// command the pipeline emits is a pure function of this struct plus the
// composed ArgumentBundle.
type RunConfig struct {
	ModelPreset string
	ModelType   string

	Ref      string
	Bam      string
	TruthVCF string
	TruthBED string

	// Filled by ResolvePreset only, never from flags.
	BamIndex   string
	RefIndexes []string

	CaptureBed       string
	Regions          string
	CustomizedModel  string
	ProposedVariants string

	MakeExamplesExtraArgs        string
	CallVariantsExtraArgs        string
	PostprocessVariantsExtraArgs string

	BinVersion string
	NumShards  int
	BaseDir    string

	DockerBuild             bool
	UseGPU                  bool
	SaveIntermediateResults bool

	// Tri-state: HPInformationSet records whether the flag was given at all,
	// since an unset flag under PACBIO defaults to enabled.
	UseHPInformation    bool
	UseHPInformationSet bool
}

var modelTypes = map[string]bool{
	ModelTypeWGS:    true,
	ModelTypeWES:    true,
	ModelTypePacBio: true,
	ModelTypeHybrid: true,
}

// Validate enforces the cross-flag rules after preset resolution. It is the
// last point at which the config may be mutated (the PACBIO phasing default
// and the shard-count default are applied here).
func Validate(cfg *RunConfig) error {
	if cfg.ModelPreset == "" {
		var missing []string
		if cfg.ModelType == "" {
			missing = append(missing, "--model_type")
		}
		if cfg.Ref == "" {
			missing = append(missing, "--ref")
		}
		if cfg.Bam == "" {
			missing = append(missing, "--bam")
		}
		if cfg.TruthVCF == "" {
			missing = append(missing, "--truth_vcf")
		}
		if cfg.TruthBED == "" {
			missing = append(missing, "--truth_bed")
		}
		if len(missing) > 0 {
			return fmt.Errorf("no --model_preset given, so these must be set explicitly: %s",
				strings.Join(missing, ", "))
		}
	}

	if !modelTypes[cfg.ModelType] {
		return fmt.Errorf("unknown model type %q, choose one of: %s, %s, %s, %s",
			cfg.ModelType, ModelTypeWGS, ModelTypeWES, ModelTypePacBio, ModelTypeHybrid)
	}

	if cfg.CaptureBed != "" && cfg.ModelType != ModelTypeWES {
		return fmt.Errorf("--capture_bed only makes sense with model type %s, got %s",
			ModelTypeWES, cfg.ModelType)
	}

	if cfg.ModelPreset == "WES" && cfg.Regions != "" {
		return fmt.Errorf("--regions cannot be combined with the WES preset, which runs over its capture bed")
	}

	if cfg.UseHPInformationSet && cfg.ModelType != ModelTypePacBio {
		return fmt.Errorf("--use_hp_information can only be used with model type %s", ModelTypePacBio)
	}
	if !cfg.UseHPInformationSet && cfg.ModelType == ModelTypePacBio {
		// Older PACBIO runs always phased, keep that as the default.
		cfg.UseHPInformation = true
		cfg.UseHPInformationSet = true
	}

	if cfg.NumShards <= 0 {
		cfg.NumShards = runtime.NumCPU()
	}
	return nil
}
