package casestudy

import (
	"fmt"
	"path"
)

// Container-side layout. The pipeline mounts the local input/ and output/
// directories at these paths for both the caller and hap.py containers.
const (
	containerInput  = "/input"
	containerOutput = "/output"

	outputVCF   = containerOutput + "/output.vcf.gz"
	outputGVCF  = containerOutput + "/output.g.vcf.gz"
	happyPrefix = containerOutput + "/happy.output"
	stagedModel = containerInput + "/model"
)

// ArgumentBundle holds the fully composed argument lists for the compute run
// and the evaluation run. It is derived from a validated RunConfig by
// ComposeArgs and never mutated afterwards.
type ArgumentBundle struct {
	CallerArgs []string
	EvalArgs   []string
}

// stagedName maps a remote or local source to the name it will have inside
// the input directory after staging.
func stagedName(src string) string {
	return path.Base(src)
}

func stagedPath(src string) string {
	return containerInput + "/" + stagedName(src)
}

// ComposeArgs translates the config into the two argument lists. The caller
// conditionals are evaluated in a fixed sequence, so the output ordering is
// stable no matter in which order the flags arrived:
// customized model, make_examples extras, call_variants extras, PACBIO
// phasing, postprocess extras, proposed variants, region filter,
// intermediate results.
func ComposeArgs(cfg RunConfig) ArgumentBundle {
	var callerArgs []string

	if cfg.CustomizedModel != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--customized_model=%s/model.ckpt", stagedModel))
	}
	if cfg.MakeExamplesExtraArgs != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--make_examples_extra_args=%q", cfg.MakeExamplesExtraArgs))
	}
	if cfg.CallVariantsExtraArgs != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--call_variants_extra_args=%q", cfg.CallVariantsExtraArgs))
	}
	if cfg.ModelType == ModelTypePacBio && cfg.UseHPInformationSet {
		callerArgs = append(callerArgs, fmt.Sprintf("--use_hp_information=%v", cfg.UseHPInformation))
	}
	if cfg.PostprocessVariantsExtraArgs != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--postprocess_variants_extra_args=%q", cfg.PostprocessVariantsExtraArgs))
	}
	if cfg.ProposedVariants != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--proposed_variants=%q", stagedPath(cfg.ProposedVariants)))
	}
	if cfg.CaptureBed != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--regions=%q", stagedPath(cfg.CaptureBed)))
	} else if cfg.Regions != "" {
		callerArgs = append(callerArgs, fmt.Sprintf("--regions=%q", cfg.Regions))
	}
	if cfg.SaveIntermediateResults {
		callerArgs = append(callerArgs, fmt.Sprintf("--intermediate_results_dir=%s/intermediate_results_dir", containerOutput))
	}

	evalArgs := []string{
		stagedPath(cfg.TruthVCF),
		outputVCF,
		"-f " + stagedPath(cfg.TruthBED),
		"-r " + stagedPath(cfg.Ref),
		"-o " + happyPrefix,
		"--engine=vcfeval",
		"--pass-only",
	}
	if cfg.CaptureBed != "" {
		evalArgs = append(evalArgs, "--target-regions "+stagedPath(cfg.CaptureBed))
	} else if cfg.Regions != "" {
		evalArgs = append(evalArgs, fmt.Sprintf("-l %q", cfg.Regions))
	}

	return ArgumentBundle{CallerArgs: callerArgs, EvalArgs: evalArgs}
}
