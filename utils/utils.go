package utils

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Config mirrors the run flags so a case study can be described in a plain
// key:value file and replayed. Flags set on the command line win over the
// file.
type Config struct {
	ModelPreset      string
	ModelType        string
	Ref              string
	Bam              string
	TruthVCF         string
	TruthBED         string
	CaptureBed       string
	Regions          string
	BinVersion       string
	CustomizedModel  string
	ProposedVariants string

	MakeExamplesExtraArgs        string
	CallVariantsExtraArgs        string
	PostprocessVariantsExtraArgs string

	BaseDir string
}

func ReadConfig(configPath string) (Config, error) {
	configFile, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer configFile.Close()
	var cfg Config

	scanner := bufio.NewScanner(configFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "model_preset":
			cfg.ModelPreset = value
		case "model_type":
			cfg.ModelType = value
		case "ref":
			cfg.Ref = value
		case "bam":
			cfg.Bam = value
		case "truth_vcf":
			cfg.TruthVCF = value
		case "truth_bed":
			cfg.TruthBED = value
		case "capture_bed":
			cfg.CaptureBed = value
		case "regions":
			cfg.Regions = value
		case "bin_version":
			cfg.BinVersion = value
		case "customized_model":
			cfg.CustomizedModel = value
		case "proposed_variants":
			cfg.ProposedVariants = value
		case "make_examples_extra_args":
			cfg.MakeExamplesExtraArgs = value
		case "call_variants_extra_args":
			cfg.CallVariantsExtraArgs = value
		case "postprocess_variants_extra_args":
			cfg.PostprocessVariantsExtraArgs = value
		case "base":
			cfg.BaseDir = value
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil

}

// CheckDeps verifies that the host programs the pipeline shells out to are on
// PATH. gsutil is only needed for gs:// sources, so a missing gsutil is
// reported but not fatal.
func CheckDeps() error {
	var missing []string
	for _, prog := range []string{"bash", "docker", "curl"} {
		if _, err := exec.LookPath(prog); err != nil {
			missing = append(missing, prog)
		}
	}
	if _, err := exec.LookPath("gsutil"); err != nil {
		fmt.Println("gsutil not found on PATH, gs:// downloads will fail")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required programs not found on PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
