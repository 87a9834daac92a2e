package casestudy

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gmatenda/variant-bench/utils"
)

const (
	callerRepo = "https://github.com/google/deepvariant.git"
	callerBin  = "/opt/deepvariant/bin/run_deepvariant"
	happyImage = "jmcdani20/hap.py:v0.3.12"
	happyBin   = "/opt/hap.py/bin/hap.py"
)

// Pipeline runs one case study as a linear sequence of stages, every external
// command going through the Executor. There are no retries and no rollback;
// the first failing stage aborts the run. The one exception is the image
// pull, which gets a single retry after a short sleep.
type Pipeline struct {
	Config RunConfig
	Exec   utils.Executor
	Logger *slog.Logger

	// Bundle is composed during Run, between image acquisition and the
	// compute stage.
	Bundle ArgumentBundle

	// PullRetryDelay defaults to 5s, tests shorten it.
	PullRetryDelay time.Duration
}

func NewPipeline(cfg RunConfig, exec utils.Executor, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		Config:         cfg,
		Exec:           exec,
		Logger:         logger,
		PullRetryDelay: 5 * time.Second,
	}
}

func (p *Pipeline) inputDir() string  { return filepath.Join(p.Config.BaseDir, "input") }
func (p *Pipeline) outputDir() string { return filepath.Join(p.Config.BaseDir, "output") }

func (p *Pipeline) logStage(stage string, status string) {
	if p.Logger != nil {
		p.Logger.Info("CASE STUDY", "STAGE", stage, "STATUS", status)
	}
}

// Run drives the state machine: setup, stage-data, acquire-image,
// compose-args, run-compute, run-evaluate.
func (p *Pipeline) Run() error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"setup", p.Setup},
		{"stage-data", p.StageData},
		{"acquire-image", p.AcquireImage},
		{"compose-args", p.composeArgs},
		{"run-compute", p.RunCompute},
		{"run-evaluate", p.RunEvaluate},
	}

	for _, stage := range stages {
		p.logStage(stage.name, "STARTED")
		if err := stage.fn(); err != nil {
			p.logStage(stage.name, "FAILED")
			return fmt.Errorf("%s stage: %w", stage.name, err)
		}
		p.logStage(stage.name, "COMPLETED")
	}
	return nil
}

// Setup refreshes the host packages the pipeline shells out to and creates
// the working directory tree.
func (p *Pipeline) Setup() error {
	cmds := []string{
		`sudo apt-get -qq -y update`,
		`sudo apt-get -qq -y install curl docker.io`,
		fmt.Sprintf(`mkdir -p %q %q %q`, p.inputDir(), p.outputDir(), filepath.Join(p.outputDir(), "logs")),
	}
	for _, cmdStr := range cmds {
		if err := p.Exec.Run(cmdStr); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) stageCmd(src string) string {
	switch {
	case strings.HasPrefix(src, "gs://"):
		return fmt.Sprintf(`gsutil cp %q %q`, src, p.inputDir()+"/")
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		return fmt.Sprintf(`curl -L -o %q %q`, filepath.Join(p.inputDir(), stagedName(src)), src)
	default:
		return fmt.Sprintf(`cp %q %q`, src, p.inputDir()+"/")
	}
}

// StageData copies every input the run needs into input/, in a fixed order:
// reference and its indexes, reads and index, truth set, capture bed,
// proposed variants, customized model. After staging, region and capture-bed
// contigs are checked against the reference index when one is present
// locally.
func (p *Pipeline) StageData() error {
	cfg := p.Config

	srcs := []string{cfg.Ref}
	srcs = append(srcs, cfg.RefIndexes...)
	srcs = append(srcs, cfg.Bam)
	if cfg.BamIndex != "" {
		srcs = append(srcs, cfg.BamIndex)
	}
	srcs = append(srcs, cfg.TruthVCF, cfg.TruthBED)
	if cfg.CaptureBed != "" {
		srcs = append(srcs, cfg.CaptureBed)
	}
	if cfg.ProposedVariants != "" {
		srcs = append(srcs, cfg.ProposedVariants)
	}

	for _, src := range srcs {
		if err := p.Exec.Run(p.stageCmd(src)); err != nil {
			return err
		}
	}

	if cfg.CustomizedModel != "" {
		modelDir := filepath.Join(p.inputDir(), "model")
		var cmdStr string
		if strings.HasPrefix(cfg.CustomizedModel, "gs://") {
			cmdStr = fmt.Sprintf(`gsutil cp -R %q %q`, cfg.CustomizedModel, modelDir)
		} else {
			cmdStr = fmt.Sprintf(`cp -r %q %q`, cfg.CustomizedModel, modelDir)
		}
		if err := p.Exec.Run(cmdStr); err != nil {
			return err
		}
	}

	faiPath := filepath.Join(p.inputDir(), stagedName(cfg.Ref)+".fai")
	if cfg.Regions != "" {
		if err := VerifyReference(faiPath, cfg.Regions); err != nil {
			return err
		}
	}
	if cfg.CaptureBed != "" {
		bedPath := filepath.Join(p.inputDir(), stagedName(cfg.CaptureBed))
		if err := VerifyCaptureBed(faiPath, bedPath); err != nil {
			return err
		}
	}
	return nil
}

// Image returns the image the compute stage will run: a locally built tag
// under --docker_build, otherwise the released image at --bin_version, with
// the GPU variant suffix under --use_gpu.
func (p *Pipeline) Image() string {
	if p.Config.DockerBuild {
		if p.Config.UseGPU {
			return "deepvariant_gpu:latest"
		}
		return "deepvariant:latest"
	}
	tag := p.Config.BinVersion
	if p.Config.UseGPU {
		tag += "-gpu"
	}
	return "google/deepvariant:" + tag
}

// AcquireImage builds the image from source or pulls the released one. Build
// and pull are mutually exclusive, chosen once. The pull gets a single retry
// after a sleep since registry hiccups are common on fresh hosts.
func (p *Pipeline) AcquireImage() error {
	if p.Config.DockerBuild {
		srcDir := filepath.Join(p.Config.BaseDir, "deepvariant")
		if err := p.Exec.Run(fmt.Sprintf(`git clone %s %q`, callerRepo, srcDir)); err != nil {
			return err
		}
		buildCmd := fmt.Sprintf(`sudo docker build -t %s %q`, p.Image(), srcDir)
		if p.Config.UseGPU {
			buildCmd = fmt.Sprintf(`sudo docker build -t %s --build-arg=FROM_IMAGE=nvidia/cuda:11.3.1-cudnn8-devel-ubuntu20.04 %q`, p.Image(), srcDir)
		}
		return p.Exec.Run(buildCmd)
	}

	pullCmd := fmt.Sprintf(`sudo docker pull %s`, p.Image())
	err := p.Exec.Run(pullCmd)
	if err != nil {
		fmt.Printf("Pull failed (%v), retrying once ...\n", err)
		time.Sleep(p.PullRetryDelay)
		err = p.Exec.Run(pullCmd)
	}
	return err
}

func (p *Pipeline) composeArgs() error {
	p.Bundle = ComposeArgs(p.Config)
	return nil
}

// RunCompute launches the variant caller container with the composed args.
func (p *Pipeline) RunCompute() error {
	gpuArg := ""
	if p.Config.UseGPU {
		gpuArg = "--gpus 1 "
	}

	cmdStr := fmt.Sprintf(`sudo docker run %s-v %q:%q -v %q:%q %s %s --model_type=%s --ref=%q --reads=%q --output_vcf=%q --output_gvcf=%q --num_shards=%d`,
		gpuArg,
		p.inputDir(), containerInput,
		p.outputDir(), containerOutput,
		p.Image(), callerBin,
		p.Config.ModelType,
		stagedPath(p.Config.Ref),
		stagedPath(p.Config.Bam),
		outputVCF, outputGVCF,
		p.Config.NumShards)
	if len(p.Bundle.CallerArgs) > 0 {
		cmdStr += " " + strings.Join(p.Bundle.CallerArgs, " ")
	}
	return p.Exec.Run(cmdStr)
}

// RunEvaluate scores the output against the truth set with hap.py.
func (p *Pipeline) RunEvaluate() error {
	cmdStr := fmt.Sprintf(`sudo docker run -v %q:%q -v %q:%q %s %s %s`,
		p.inputDir(), containerInput,
		p.outputDir(), containerOutput,
		happyImage, happyBin,
		strings.Join(p.Bundle.EvalArgs, " "))
	return p.Exec.Run(cmdStr)
}
