package casestudy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFai = "chr1\t248956422\t112\t70\t71\n" +
	"chr2\t242193529\t252513167\t70\t71\n" +
	"chr20\t64444167\t2655442269\t70\t71\n"

func writeFai(t *testing.T) string {
	t.Helper()
	faiPath := filepath.Join(t.TempDir(), "ref.fasta.fai")
	if err := os.WriteFile(faiPath, []byte(testFai), 0644); err != nil {
		t.Fatal(err)
	}
	return faiPath
}

func TestVerifyReferenceKnownContigs(t *testing.T) {
	faiPath := writeFai(t)
	for _, regions := range []string{
		"chr20",
		"chr20:10,000,000-10,010,000",
		"chr1:20-30 chr2:100-200",
		"'chr1:20-30 chr2:100-200'",
	} {
		if err := VerifyReference(faiPath, regions); err != nil {
			t.Errorf("regions %q: unexpected error: %v", regions, err)
		}
	}
}

func TestVerifyReferenceUnknownContig(t *testing.T) {
	faiPath := writeFai(t)
	err := VerifyReference(faiPath, "chr1 chrX:1-100")
	if err == nil {
		t.Fatal("expected error for contig absent from the index")
	}
}

func TestVerifyReferenceMissingIndexIsSkipped(t *testing.T) {
	faiPath := filepath.Join(t.TempDir(), "nonexistent.fai")
	if err := VerifyReference(faiPath, "chr20"); err != nil {
		t.Errorf("missing index should be skipped, got: %v", err)
	}
}

func writeBed(t *testing.T, dir string, content string) string {
	t.Helper()
	bedPath := filepath.Join(dir, "capture.bed")
	if err := os.WriteFile(bedPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return bedPath
}

func TestVerifyCaptureBedKnownContigs(t *testing.T) {
	faiPath := writeFai(t)
	bedPath := writeBed(t, filepath.Dir(faiPath),
		"track name=capture\n"+
			"chr1\t100\t200\n"+
			"chr1\t500\t900\n"+
			"# a comment\n"+
			"chr20\t1000\t2000\n")
	if err := VerifyCaptureBed(faiPath, bedPath); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVerifyCaptureBedUnknownContig(t *testing.T) {
	faiPath := writeFai(t)
	bedPath := writeBed(t, filepath.Dir(faiPath), "chr1\t100\t200\nchrZZ\t10\t20\n")
	err := VerifyCaptureBed(faiPath, bedPath)
	if err == nil {
		t.Fatal("expected error for bed contig absent from the index")
	}
	if !strings.Contains(err.Error(), "chrZZ") {
		t.Errorf("error does not name the bad contig: %v", err)
	}
}

func TestVerifyCaptureBedMissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	faiPath := writeFai(t)
	if err := VerifyCaptureBed(faiPath, filepath.Join(dir, "absent.bed")); err != nil {
		t.Errorf("missing bed should be skipped, got: %v", err)
	}
	bedPath := writeBed(t, dir, "chrZZ\t10\t20\n")
	if err := VerifyCaptureBed(filepath.Join(dir, "absent.fai"), bedPath); err != nil {
		t.Errorf("missing index should be skipped, got: %v", err)
	}
}
