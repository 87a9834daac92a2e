package casestudy

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/biogo/biogo/io/seqio/fai"
)

// readFaiIndex loads a .fai index. A missing file returns a nil index and no
// error: dry runs stage nothing, and a manually supplied reference may not
// ship one.
func readFaiIndex(faiPath string) (fai.Index, error) {
	f, err := os.Open(faiPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	idx, err := fai.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("reading reference index %s: %w", faiPath, err)
	}
	return idx, nil
}

// VerifyReference checks that every contig named in a regions filter exists
// in the staged reference's .fai index. A missing index file is skipped.
func VerifyReference(faiPath string, regions string) error {
	idx, err := readFaiIndex(faiPath)
	if err != nil || idx == nil {
		return err
	}

	for _, token := range strings.Fields(regions) {
		contig := strings.Trim(token, `'"`)
		if i := strings.IndexByte(contig, ':'); i >= 0 {
			contig = contig[:i]
		}
		if contig == "" {
			continue
		}
		if _, ok := idx[contig]; !ok {
			return fmt.Errorf("region contig %q not found in reference index %s", contig, faiPath)
		}
	}
	return nil
}

// VerifyCaptureBed checks that every contig named in the first column of the
// staged capture bed exists in the reference index. Only contig names are
// read, the rest of the bed stays opaque. Missing index or bed is skipped,
// as with VerifyReference.
func VerifyCaptureBed(faiPath string, bedPath string) error {
	idx, err := readFaiIndex(faiPath)
	if err != nil || idx == nil {
		return err
	}

	bed, err := os.Open(bedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer bed.Close()

	seen := make(map[string]bool)
	scanner := bufio.NewScanner(bed)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		contig := strings.Fields(line)[0]
		if seen[contig] {
			continue
		}
		seen[contig] = true
		if _, ok := idx[contig]; !ok {
			return fmt.Errorf("capture bed contig %q not found in reference index %s", contig, faiPath)
		}
	}
	return scanner.Err()
}
