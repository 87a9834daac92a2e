/*
Copyright © 2025 Grace Matenda (gmatenda@gmail.com)
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "variant-bench",
	Short: "Runs benchmark case studies for a containerized variant caller",
	Long: `variant-bench orchestrates benchmark "case studies" end to end:
1.	Resolves flags against named dataset presets (WGS, WES, PACBIO, HYBRID_PACBIO_ILLUMINA)
2.	Stages the reference, reads and truth set into a local working tree
3.	Builds or pulls the caller image and runs it
4.	Scores the output against the truth set with hap.py
5.	Renders an HTML benchmark report

All computation happens inside the external containers; every command is
printed before it runs, and --dry_run prints the full sequence without
executing anything.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file ")
}
