// Package texpecting supports the use of texpect in your Go tests. The
// golden file for a test lives under testdata and is named after the test:
//
//	func TestGreeting(t *testing.T) {
//		out := greet("world")
//		texpecting.Fatal(t, "", strings.NewReader(out))
//	}
//
// compares out against testdata/TestGreeting.texpect. A missing golden file
// can be recorded from the current output by running the test with the
// TEXPECT_RECORD environment variable set to a regexp matching the test
// name; the recorded file matches the recorded output exactly and gets its
// fragments edited in by hand.
package texpecting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"texpect"
)

// When this environment variable is set to a regexp and the name of the
// current test matches, calls to Error or Fatal will record the out text as
// a new golden file instead of comparing it. E.g.
//
//	TEXPECT_RECORD=TestRecording go test .
const RecordEnv = "TEXPECT_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go
// help test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint string, out io.Reader) error {
	return defaultConfig.Error(t, hint, out)
}

func Fatal(t *testing.T, hint string, out io.Reader) {
	defaultConfig.Fatal(t, hint, out)
}

func Record(t *testing.T, hint string, out io.Reader) {
	defaultConfig.Record(t, hint, out)
}

// GoldenRepo maps test names to golden file names within a directory.
type GoldenRepo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = ".texpect"
	NoSuffix  = "\x00"
)

func (gr GoldenRepo) Filename(t *testing.T, hint string) string {
	suffix := gr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(gr.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(gr.Dir, t.Name(), hint)
	}
	return filepath.Join(gr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	GoldenFileName  func(t *testing.T, hint string) string
	RecordOverwrite bool
	KeepOut         bool
}

var defaultConfig = Config{
	GoldenFileName: GoldenRepo{Dir: GoTestdataDir}.Filename,
	KeepOut:        true,
}

func (cfg Config) Error(t *testing.T, hint string, out io.Reader) error {
	if recordTest(t) {
		cfg.Record(t, hint, out)
		return nil
	}
	err := cfg.compare(t, hint, out)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, out io.Reader) {
	if recordTest(t) {
		cfg.Record(t, hint, out)
	} else if err := cfg.compare(t, hint, out); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("texpecting: invalid regexp '%s' in %s, not recording: %s",
			rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg *Config) compare(t *testing.T, hint string, out io.Reader) (err error) {
	goldenFile := cfg.GoldenFileName(t, hint)
	if _, err := os.Stat(goldenFile); os.IsNotExist(err) {
		t.Logf("to record a golden file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return fmt.Errorf("golden file %s does not exist", goldenFile)
	}
	outName := hint
	if outName == "" {
		outName = "test output"
	}
	if !cfg.KeepOut {
		return cfg.check(goldenFile, outName, out)
	}
	keepfile := goldenFile
	if filepath.Ext(keepfile) == StdSuffix {
		keepfile = keepfile[:len(keepfile)-len(StdSuffix)]
	}
	k, err := os.CreateTemp(filepath.Dir(keepfile), filepath.Base(keepfile)+".")
	if err != nil {
		return err
	}
	defer func() {
		k.Close()
		if err == nil {
			os.Remove(k.Name())
		}
	}()
	return cfg.check(goldenFile, outName, io.TeeReader(out, k))
}

func (cfg *Config) check(goldenFile, outName string, out io.Reader) error {
	golden, err := texpect.OpenGoldenFile(goldenFile)
	if err != nil {
		return err
	}
	defer golden.Close()
	var cmpr texpect.Compare
	return cmpr.Check(golden, outName, out)
}

func (cfg Config) Record(t *testing.T, hint string, out io.Reader) {
	goldenFile := cfg.GoldenFileName(t, hint)
	if _, err := os.Stat(goldenFile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("texpecting: golden file '%s' already exists", goldenFile)
	}
	dir := filepath.Dir(goldenFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	wr, err := os.Create(goldenFile)
	if err != nil {
		t.Fatal(err)
	}
	defer wr.Close()
	if err = texpect.Prepare(wr, out); err != nil {
		t.Error(err)
	}
	t.Errorf("texpecting recorder wrote: %s", goldenFile)
}
