package texpect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Compare matches an out text against a golden text. The zero value is valid
// and can be reused for more than one comparison. It must not be used
// concurrently.
//
// Matching is strictly sequential: golden line i is matched anchored at the
// start of the out text not consumed by lines 0..i-1, and the first line
// that fails to match terminates the comparison. There is no backtracking
// across golden lines, so a greedy fragment at the end of a line can consume
// text belonging to the next line and shift the reported mismatch there.
type Compare struct {
	// OnMatch, if set, is called after every matched golden line with the
	// consumed prefix of the out text.
	OnMatch func(p *Pattern, consumed string)
}

// MismatchError reports the first golden line that failed to match.
type MismatchError struct {
	GoldenName string
	OutName    string
	// Line is the 0-based ordinal of the failing golden line.
	Line    int
	Pattern *Pattern
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("golden line %d of %s does not match %s",
		e.Line, e.GoldenName, e.OutName)
}

// TrailingError reports out text left over after every golden line matched.
type TrailingError struct {
	GoldenName string
	OutName    string
	// Trailing is the unmatched suffix of the out text.
	Trailing string
}

func (e *TrailingError) Error() string {
	return fmt.Sprintf("%s has content beyond the golden text of %s",
		e.OutName, e.GoldenName)
}

// Check reads out completely and matches it against the golden lines. It
// returns nil when every golden line matched and nothing of the out text is
// left, a *MismatchError or *TrailingError otherwise. Errors from the golden
// side pass through as the reader reports them.
func (cmpr *Compare) Check(golden *GoldenReader, outName string, out io.Reader) error {
	text, err := io.ReadAll(out)
	if err != nil {
		return err
	}
	rest := string(text)
	for {
		p, err := golden.NextLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		n, ok := p.MatchPrefix(rest)
		if !ok {
			return &MismatchError{
				GoldenName: golden.Name(),
				OutName:    outName,
				Line:       p.Line(),
				Pattern:    p,
			}
		}
		if cmpr.OnMatch != nil {
			cmpr.OnMatch(p, rest[:n])
		}
		rest = rest[n:]
	}
	if rest != "" {
		return &TrailingError{
			GoldenName: golden.Name(),
			OutName:    outName,
			Trailing:   rest,
		}
	}
	return nil
}

// Files opens both files and compares them. The out file is read fully into
// memory before matching begins, the golden file is read line by line.
func (cmpr *Compare) Files(goldenFile, outFile string) error {
	golden, err := OpenGoldenFile(goldenFile)
	if err != nil {
		return err
	}
	defer golden.Close()
	out, err := os.Open(outFile)
	if err != nil {
		return err
	}
	defer out.Close()
	return cmpr.Check(golden, outFile, out)
}

// Strings compares in-memory texts, naming them "golden" and "out" in
// diagnostics.
func (cmpr *Compare) Strings(golden, out string) error {
	gr, err := NewGoldenString("golden", golden)
	if err != nil {
		return err
	}
	return cmpr.Check(gr, "out", strings.NewReader(out))
}
