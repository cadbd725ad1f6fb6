package gen

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/render"
)

// CheckResult compares one generated output with the file on disk.
type CheckResult struct {
	Path string
	// Stale is set when the file differs from a fresh run, is missing, or
	// should no longer exist.
	Stale  bool
	Reason string
}

// Check compares out with its committed file, ignoring metadata lines.
func Check(out *Output) (CheckResult, error) {
	res := CheckResult{Path: out.Path}

	existing, err := os.ReadFile(out.Path)
	if os.IsNotExist(err) {
		if out.Source != nil {
			res.Stale, res.Reason = true, "missing"
		}
		return res, nil
	}
	if err != nil {
		return res, errors.Wrapf(err, "failed to read %s", out.Path)
	}

	switch {
	case out.Source == nil && isGenerated(existing):
		res.Stale, res.Reason = true, "no longer generated"
	case out.Source != nil && contentDiffers(existing, out.Source):
		res.Stale, res.Reason = true, "out of date"
	}
	return res, nil
}

// CheckAll checks every output and returns an ErrStale error naming the stale
// files, if any.
func CheckAll(outs []*Output) ([]CheckResult, error) {
	var (
		results []CheckResult
		stale   []string
	)
	for _, out := range outs {
		res, err := Check(out)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		if res.Stale {
			stale = append(stale, res.Path+" ("+res.Reason+")")
		}
	}
	if len(stale) > 0 {
		return results, errors.WithHint(
			errors.WithDetail(errors.Wrapf(errors.ErrStale, "%d file(s)", len(stale)), strings.Join(stale, "\n")),
			"run isxgen to regenerate")
	}
	return results, nil
}

// contentDiffers compares two generated files line by line, ignoring
// metadata lines. Content that cannot be scanned counts as different.
func contentDiffers(a, b []byte) bool {
	fa, err := filterMetadataLines(a)
	if err != nil {
		return true
	}
	fb, err := filterMetadataLines(b)
	if err != nil {
		return true
	}
	return fa != fb
}

// filterMetadataLines removes the isxgen version line, which changes between
// builds without changing the generated code.
func filterMetadataLines(content []byte) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	// a line is never longer than the whole file
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), render.MetadataPrefix) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "failed to scan generated file")
	}
	return result.String(), nil
}
