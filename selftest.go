package texpect

import (
	"errors"
	"fmt"
	"regexp"
)

// SelfTest runs the built-in verification suite of the pattern compiler and
// the matcher. It returns nil when every check holds and a descriptive error
// for the first check that does not. The suite is reachable from the command
// line via --selftest so that an installed binary can be validated without
// a Go toolchain.
func SelfTest() error {
	checks := []struct {
		name string
		run  func() error
	}{
		{"literal line", selfTestLiteral},
		{"embedded fragment", selfTestEmbedded},
		{"leading fragment", selfTestLeading},
		{"trailing fragment", selfTestTrailing},
		{"fragment only", selfTestFragmentOnly},
		{"end to end", selfTestEndToEnd},
		{"unclosed fragment", selfTestUnclosed},
		{"empty fragment", selfTestEmpty},
	}
	for _, c := range checks {
		if err := c.run(); err != nil {
			return fmt.Errorf("self test %s: %w", c.name, err)
		}
	}
	return nil
}

func compileSource(line string) (string, error) {
	p, err := Compile(line)
	if err != nil {
		return "", err
	}
	return p.Source(), nil
}

func expectSource(line, want string) error {
	src, err := compileSource(line)
	if err != nil {
		return err
	}
	if src != want {
		return fmt.Errorf("compiled `%s` to `%s`, want `%s`", line, src, want)
	}
	// compilation is idempotent
	again, err := compileSource(line)
	if err != nil {
		return err
	}
	if again != src {
		return fmt.Errorf("recompiling `%s` gave `%s`, first time `%s`", line, again, src)
	}
	return nil
}

func selfTestLiteral() error {
	const line = `This is just a normal line with * and stuff`
	return expectSource(line, regexp.QuoteMeta(line))
}

func selfTestEmbedded() error {
	return expectSource(
		`Beginning <[0-9a-f]{4}> end`,
		regexp.QuoteMeta(`Beginning `)+`[0-9a-f]{4}`+regexp.QuoteMeta(` end`),
	)
}

func selfTestLeading() error {
	return expectSource(
		`<[0-9a-f]{4}> end`,
		`[0-9a-f]{4}`+regexp.QuoteMeta(` end`),
	)
}

func selfTestTrailing() error {
	return expectSource(
		`Beginning <[0-9a-f]{4}>`,
		regexp.QuoteMeta(`Beginning `)+`[0-9a-f]{4}`,
	)
}

func selfTestFragmentOnly() error {
	return expectSource(`<[0-9a-f]{4}>`, `[0-9a-f]{4}`)
}

func selfTestEndToEnd() error {
	const golden = "server up\nport=<\\d+>\n"
	var cmpr Compare
	if err := cmpr.Strings(golden, "server up\nport=12345\n"); err != nil {
		return fmt.Errorf("exact out text rejected: %w", err)
	}
	err := cmpr.Strings(golden, "server up\nport=12345\nx")
	var trailing *TrailingError
	if !errors.As(err, &trailing) {
		return fmt.Errorf("out text with extra content gave %v, want trailing error", err)
	}
	return nil
}

func selfTestUnclosed() error {
	gr, err := NewGoldenString("selftest", "ok line\n<foo\nnever reached\n")
	if err != nil {
		return err
	}
	if _, err = gr.NextLine(); err != nil {
		return fmt.Errorf("well-formed line rejected: %w", err)
	}
	_, err = gr.NextLine()
	if !errors.Is(err, ErrUnclosedFragment) {
		return fmt.Errorf("unclosed fragment gave %v, want %v", err, ErrUnclosedFragment)
	}
	var ge *GoldenError
	if !errors.As(err, &ge) || ge.Line != 1 {
		return fmt.Errorf("unclosed fragment reported as %v, want golden line 1", err)
	}
	return nil
}

func selfTestEmpty() error {
	_, err := Compile("before <> after")
	if !errors.Is(err, ErrEmptyFragment) {
		return fmt.Errorf("empty fragment gave %v, want %v", err, ErrEmptyFragment)
	}
	return nil
}
