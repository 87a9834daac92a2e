/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"

	"github.com/gmatenda/variant-bench/hostsetup"
	"github.com/gmatenda/variant-bench/utils"

	"github.com/spf13/cobra"
)

// setupGpuCmd represents the setupGpu command
var setupGpuCmd = &cobra.Command{
	Use:   "setup-gpu",
	Short: "Installs the NVIDIA container runtime on this host",
	Long: `One-off host setup for GPU case studies: adds the NVIDIA apt
repository, installs nvidia-docker2, restarts the container runtime and runs
an nvidia-smi smoke test. Use --dry_run to preview the commands.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, drErr := cmd.Flags().GetBool("dry_run")
		if drErr != nil {
			log.Fatalf("Error getting dry_run flag: %v", drErr)
		}

		var exec utils.Executor = &utils.ShellExecutor{}
		if dryRun {
			exec = &utils.DryRunExecutor{}
		}
		if err := hostsetup.InstallNvidiaDocker(exec); err != nil {
			log.Fatalf("Host setup failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(setupGpuCmd)

	setupGpuCmd.Flags().Bool("dry_run", false, "Print the command sequence without executing it")
}
