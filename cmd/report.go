/*
Copyright © 2025 Grace Matenda (gmatenda@gmail.com)
*/
package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gmatenda/variant-bench/evaluation"

	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Renders the benchmark report for a finished case study",
	Long: `Reads the hap.py summary and the structured run log of a finished
case study and renders an HTML report with per-type recall, precision and F1
plus stage timings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		baseDir, bErr := cmd.Flags().GetString("base")
		if bErr != nil {
			log.Fatalf("Error getting base flag: %v", bErr)
		}
		if baseDir == "" {
			home, hErr := os.UserHomeDir()
			if hErr != nil {
				log.Fatalf("Error finding home directory: %v", hErr)
			}
			baseDir = filepath.Join(home, "case-study")
		}

		outputDir := filepath.Join(baseDir, "output")
		summaryCSV := filepath.Join(outputDir, "happy.output.summary.csv")
		runLogPath := filepath.Join(outputDir, "logs", "run.log")
		reportHTML := filepath.Join(outputDir, "report.html")

		if _, err := os.Stat(summaryCSV); err != nil {
			log.Fatalf("hap.py summary not found at %s, has the case study finished?", summaryCSV)
		}
		if err := evaluation.WriteReport(summaryCSV, runLogPath, reportHTML); err != nil {
			log.Fatalf("Report generation failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("base", "", "Base working directory of the finished run (default ${HOME}/case-study)")
}
