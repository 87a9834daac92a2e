/*
Copyright © 2025 Grace Matenda (gmatenda@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gmatenda/variant-bench/casestudy"
	"github.com/gmatenda/variant-bench/evaluation"
	"github.com/gmatenda/variant-bench/utils"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one case study: stage data, acquire image, call variants, evaluate",
	Long: `Runs the following pipeline:

1. Install host dependencies and create the input/output working tree
2. Stage the reference, reads and truth set into input/
3. Build or pull the caller container image
4. Run the caller with the composed arguments
5. Score the output VCF against the truth set with hap.py
6. Render the benchmark report

With --dry_run every command is printed with a marker instead of executed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg casestudy.RunConfig

		readString := func(name string, dest *string) {
			value, err := cmd.Flags().GetString(name)
			if err != nil {
				log.Fatalf("Error getting %s flag: %v", name, err)
			}
			*dest = value
		}
		readBool := func(name string, dest *bool) {
			value, err := cmd.Flags().GetBool(name)
			if err != nil {
				log.Fatalf("Error getting %s flag: %v", name, err)
			}
			*dest = value
		}

		readString("model_preset", &cfg.ModelPreset)
		readString("model_type", &cfg.ModelType)
		readString("ref", &cfg.Ref)
		readString("bam", &cfg.Bam)
		readString("truth_vcf", &cfg.TruthVCF)
		readString("truth_bed", &cfg.TruthBED)
		readString("capture_bed", &cfg.CaptureBed)
		readString("regions", &cfg.Regions)
		readString("bin_version", &cfg.BinVersion)
		readString("customized_model", &cfg.CustomizedModel)
		readString("proposed_variants", &cfg.ProposedVariants)
		readString("make_examples_extra_args", &cfg.MakeExamplesExtraArgs)
		readString("call_variants_extra_args", &cfg.CallVariantsExtraArgs)
		readString("postprocess_variants_extra_args", &cfg.PostprocessVariantsExtraArgs)
		readString("base", &cfg.BaseDir)

		readBool("docker_build", &cfg.DockerBuild)
		readBool("use_gpu", &cfg.UseGPU)
		readBool("save_intermediate_results", &cfg.SaveIntermediateResults)
		readBool("use_hp_information", &cfg.UseHPInformation)
		cfg.UseHPInformationSet = cmd.Flags().Changed("use_hp_information")

		numShards, nsErr := cmd.Flags().GetInt("num_shards")
		if nsErr != nil {
			log.Fatalf("Error getting num_shards flag: %v", nsErr)
		}
		cfg.NumShards = numShards

		dryRun, drErr := cmd.Flags().GetBool("dry_run")
		if drErr != nil {
			log.Fatalf("Error getting dry_run flag: %v", drErr)
		}

		if cfgFile != "" {
			fmt.Printf("Reading config file %s\n", cfgFile)
			fileCfg, fErr := utils.ReadConfig(cfgFile)
			if fErr != nil {
				log.Fatalf("Error reading config file: %v", fErr)
			}
			mergeConfigFile(&cfg, fileCfg, cmd.Flags().Changed("bin_version"))
		}

		if cfg.BaseDir == "" {
			home, hErr := os.UserHomeDir()
			if hErr != nil {
				log.Fatalf("Error finding home directory: %v", hErr)
			}
			cfg.BaseDir = filepath.Join(home, "case-study")
		}

		if err := casestudy.ResolvePreset(&cfg); err != nil {
			log.Fatalf("%v", err)
		}
		if err := casestudy.Validate(&cfg); err != nil {
			log.Fatalf("%v", err)
		}

		if dryRun {
			pipeline := casestudy.NewPipeline(cfg, &utils.DryRunExecutor{}, nil)
			if err := pipeline.Run(); err != nil {
				log.Fatalf("Pipeline failed: %v", err)
			}
			fmt.Printf("\nDry run complete, %d commands previewed\n", len(pipeline.Exec.Commands()))
			return
		}

		fmt.Printf("Checking dependencies ...\n\n")
		if err := utils.CheckDeps(); err != nil {
			log.Fatalf("Dependency check failed: %v", err)
		}

		outputDir := filepath.Join(cfg.BaseDir, "output")
		logsDir := filepath.Join(outputDir, "logs")
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			log.Fatalf("Error creating logs directory: %v", err)
		}
		runLogPath := filepath.Join(logsDir, "run.log")
		logger, logFile, lErr := utils.NewRunLogger(runLogPath)
		if lErr != nil {
			log.Fatalf("Error opening run log: %v", lErr)
		}
		defer logFile.Close()

		pipeline := casestudy.NewPipeline(cfg, &utils.ShellExecutor{}, logger)
		if err := pipeline.Run(); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}

		summaryCSV := filepath.Join(outputDir, "happy.output.summary.csv")
		reportHTML := filepath.Join(outputDir, "report.html")
		if err := evaluation.WriteReport(summaryCSV, runLogPath, reportHTML); err != nil {
			log.Fatalf("Report generation failed: %v", err)
		}
	},
}

// mergeConfigFile fills only the fields the command line left empty.
func mergeConfigFile(cfg *casestudy.RunConfig, fileCfg utils.Config, binVersionSet bool) {
	merge := func(dest *string, value string) {
		if *dest == "" {
			*dest = value
		}
	}
	merge(&cfg.ModelPreset, fileCfg.ModelPreset)
	merge(&cfg.ModelType, fileCfg.ModelType)
	merge(&cfg.Ref, fileCfg.Ref)
	merge(&cfg.Bam, fileCfg.Bam)
	merge(&cfg.TruthVCF, fileCfg.TruthVCF)
	merge(&cfg.TruthBED, fileCfg.TruthBED)
	merge(&cfg.CaptureBed, fileCfg.CaptureBed)
	merge(&cfg.Regions, fileCfg.Regions)
	merge(&cfg.CustomizedModel, fileCfg.CustomizedModel)
	merge(&cfg.ProposedVariants, fileCfg.ProposedVariants)
	merge(&cfg.MakeExamplesExtraArgs, fileCfg.MakeExamplesExtraArgs)
	merge(&cfg.CallVariantsExtraArgs, fileCfg.CallVariantsExtraArgs)
	merge(&cfg.PostprocessVariantsExtraArgs, fileCfg.PostprocessVariantsExtraArgs)
	merge(&cfg.BaseDir, fileCfg.BaseDir)
	if fileCfg.BinVersion != "" && !binVersionSet {
		cfg.BinVersion = fileCfg.BinVersion
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("model_preset", "", "Preset case study: WGS, WES, PACBIO or HYBRID_PACBIO_ILLUMINA")
	runCmd.Flags().String("model_type", "", "Caller model type, normally resolved from the preset")
	runCmd.Flags().String("ref", "", "Reference genome fasta (local path, gs:// or https URL)")
	runCmd.Flags().String("bam", "", "Aligned reads bam (local path, gs:// or https URL)")
	runCmd.Flags().String("truth_vcf", "", "Benchmark truth VCF")
	runCmd.Flags().String("truth_bed", "", "Benchmark confident-regions bed")
	runCmd.Flags().String("capture_bed", "", "Exome capture bed, WES only")
	runCmd.Flags().String("regions", "", "Region filter, e.g. 'chr20' or 'chr20:10,000,000-10,010,000'")
	runCmd.Flags().String("bin_version", "1.5.0", "Released caller image version to pull")
	runCmd.Flags().String("customized_model", "", "Custom model checkpoint directory to use instead of the released one")
	runCmd.Flags().String("proposed_variants", "", "Proposed variants VCF for the candidate importer")
	runCmd.Flags().String("make_examples_extra_args", "", "Comma-separated flag=value pairs passed through to make_examples")
	runCmd.Flags().String("call_variants_extra_args", "", "Comma-separated flag=value pairs passed through to call_variants")
	runCmd.Flags().String("postprocess_variants_extra_args", "", "Comma-separated flag=value pairs passed through to postprocess_variants")
	runCmd.Flags().String("base", "", "Base working directory (default ${HOME}/case-study)")
	runCmd.Flags().Int("num_shards", 0, "Shards for make_examples (default: number of CPUs)")

	runCmd.Flags().Bool("docker_build", false, "Build the caller image from source instead of pulling")
	runCmd.Flags().Bool("dry_run", false, "Print the command sequence without executing it")
	runCmd.Flags().Bool("use_gpu", false, "Use the GPU image and pass the GPU through to the container")
	runCmd.Flags().Bool("use_hp_information", false, "Use haplotype phasing information (PACBIO only)")
	runCmd.Flags().Bool("save_intermediate_results", false, "Keep the caller's intermediate outputs")
}
