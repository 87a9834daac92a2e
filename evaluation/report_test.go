package evaluation

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const testSummary = `Type,Filter,TRUTH.TOTAL,TRUTH.TP,TRUTH.FN,QUERY.TOTAL,QUERY.FP,QUERY.UNK,FP.gt,METRIC.Recall,METRIC.Precision,METRIC.Frac_NA,METRIC.F1_Score
INDEL,ALL,10628,10543,85,21141,93,10031,77,0.992002,0.991632,0.474481,0.991817
INDEL,PASS,10628,10543,85,21141,93,10031,77,0.992002,0.991632,0.474481,0.991817
SNP,ALL,70166,70074,92,101223,92,31021,8,0.998689,0.998690,0.306462,0.998689
SNP,PASS,70166,70074,92,101223,92,31021,8,0.998689,0.998690,0.306462,0.998689
`

func writeSummary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "happy.output.summary.csv")
	if err := os.WriteFile(path, []byte(testSummary), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseHappySummary(t *testing.T) {
	metrics, err := ParseHappySummary(writeSummary(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(metrics) != 2 {
		t.Fatalf("got %d metric rows, want 2 (PASS only)", len(metrics))
	}

	indel, snp := metrics[0], metrics[1]
	if indel.Type != "INDEL" || snp.Type != "SNP" {
		t.Fatalf("types wrong: %+v", metrics)
	}
	if math.Abs(indel.F1-0.991817) > 1e-6 {
		t.Errorf("INDEL F1 = %v", indel.F1)
	}
	if math.Abs(snp.Recall-0.998689) > 1e-6 {
		t.Errorf("SNP recall = %v", snp.Recall)
	}
	if math.Abs(snp.Precision-0.998690) > 1e-6 {
		t.Errorf("SNP precision = %v", snp.Precision)
	}
}

func TestMeanF1(t *testing.T) {
	metrics := []Metrics{{Type: "INDEL", F1: 0.99}, {Type: "SNP", F1: 0.97}}
	if got := MeanF1(metrics); math.Abs(got-0.98) > 1e-9 {
		t.Errorf("mean F1 = %v, want 0.98", got)
	}
}

func TestWriteReport(t *testing.T) {
	summary := writeSummary(t)
	outDir := t.TempDir()
	reportHTML := filepath.Join(outDir, "report.html")

	// Run log intentionally absent, the report should still render.
	err := WriteReport(summary, filepath.Join(outDir, "run.log"), reportHTML)
	if err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(reportHTML)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("report file is empty")
	}
}

func TestParseHappySummaryMissingFile(t *testing.T) {
	_, err := ParseHappySummary(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Error("expected error for missing summary")
	}
}
