package texpect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// GoldenReader reads a golden file line by line and compiles each line into
// a Pattern. Every line of the file is reference text; lines keep their
// terminator so that matching covers it too. Errors are tagged with the
// reader's name and the 0-based line number they occurred on.
type GoldenReader struct {
	src  string
	rd   io.Reader
	brd  *bufio.Reader
	lno  int
	done bool
}

func NewGoldenReader(name string, r io.Reader) (*GoldenReader, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	return &GoldenReader{src: name, rd: r, brd: bufio.NewReader(r)}, nil
}

func NewGoldenString(name, text string) (*GoldenReader, error) {
	return NewGoldenReader(name, strings.NewReader(text))
}

func OpenGoldenFile(file string) (*GoldenReader, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	return NewGoldenReader(file, r)
}

func (gr *GoldenReader) Close() error {
	gr.brd = nil
	gr.done = true
	if c, ok := gr.rd.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Name returns the name the reader was created with, usually a file name.
func (gr *GoldenReader) Name() string { return gr.src }

// Line returns the 0-based ordinal of the next line to be read.
func (gr *GoldenReader) Line() int { return gr.lno }

// NextLine reads and compiles the next golden line. It returns io.EOF once
// the golden text is exhausted. Compilation failures come back as a
// *GoldenError around the specific compilation error.
func (gr *GoldenReader) NextLine() (*Pattern, error) {
	if gr.done {
		return nil, io.EOF
	}
	line, err := gr.brd.ReadString('\n')
	switch {
	case err == io.EOF:
		gr.done = true
		if line == "" {
			return nil, io.EOF
		}
	case err != nil:
		return nil, &GoldenError{Name: gr.src, Line: gr.lno, Err: err}
	}
	p, cerr := Compile(line)
	if cerr != nil {
		return nil, &GoldenError{Name: gr.src, Line: gr.lno, Err: cerr}
	}
	p.srcLine = gr.lno
	gr.lno++
	return p, nil
}

// GoldenError tags a read or compilation error with the golden source name
// and the 0-based line it occurred on.
type GoldenError struct {
	Name string
	Line int
	Err  error
}

func (e *GoldenError) Error() string {
	return fmt.Sprintf("golden %s:%d: %s", e.Name, e.Line, e.Err)
}

func (e *GoldenError) Unwrap() error { return e.Err }
